package htmlmin

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	page := "<html>\n  <head>\n    <title> Page </title>\n  </head>\n  <body>\n    <p>Hello   world</p>\n  </body>\n</html>\n"

	got, err := String(page)
	if err != nil {
		t.Fatalf("String() error = %v", err)
	}
	if len(got) >= len(page) {
		t.Errorf("String() did not shrink the page: %q", got)
	}
	if !strings.Contains(got, "Hello world") {
		t.Errorf("String() lost content: %q", got)
	}
}

func TestBytesStripsComments(t *testing.T) {
	got, err := Bytes([]byte(`<p>a</p><!-- Marker="ScriptFiles" --><p>b</p>`))
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	if strings.Contains(string(got), "Marker") {
		t.Errorf("Bytes() kept the comment: %q", got)
	}
}
