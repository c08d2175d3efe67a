// Package htmlmin minifies resolved pages.
//
// Minification must run after injection points are resolved: the
// minifier strips HTML comments, and injection points are comments.
package htmlmin

import (
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

const mediaType = "text/html"

var (
	minifier *minify.M
	once     sync.Once
)

func getMinifier() *minify.M {
	once.Do(func() {
		minifier = minify.New()
		minifier.AddFunc(mediaType, html.Minify)
	})
	return minifier
}

// Bytes minifies an HTML document.
func Bytes(page []byte) ([]byte, error) {
	return getMinifier().Bytes(mediaType, page)
}

// String minifies an HTML document.
func String(page string) (string, error) {
	return getMinifier().String(mediaType, page)
}
