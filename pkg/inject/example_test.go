package inject_test

import (
	"context"
	"fmt"
	"os"

	"github.com/vango-dev/inject/pkg/inject"
)

func Example() {
	m, err := inject.New(context.Background(), os.Stdout, inject.Config{})
	if err != nil {
		panic(err)
	}
	defer m.Close()

	fmt.Fprint(m.Writer(), "<body>", m.Marker(inject.ScriptFiles, ""), "</body>")
	_ = m.AddScriptFile("/js/chart.js", inject.Order(-10))

	if err := m.Resolve(); err != nil {
		panic(err)
	}
	// Output: <body><script src="/js/chart.js" type="text/javascript"></script></body>
}
