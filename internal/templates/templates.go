package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/lumen-ui/lumen/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// ModulePath is the Go module path.
	ModulePath string

	// Description is a short project description.
	Description string
}

// Template represents a project template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// Available templates.
var templates = map[string]*Template{
	"minimal": minimalTemplate(),
	"counter": counterTemplate(),
	"todo":    todoTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("L100").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: minimal, counter, todo")
	}
	return tmpl, nil
}

// List returns all available template names.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	return names
}

// Create generates a project from the template.
func (t *Template) Create(dir string, cfg Config) error {
	for relPath, content := range t.Files {
		tmpl, err := template.New(relPath).Parse(content)
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}

		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}

	return nil
}

// minimalTemplate returns the minimal template.
func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "Just the essentials for a Lumen app",
		Files: map[string]string{
			"main.go": `package main

import (
	"log"

	"github.com/lumen-ui/lumen/el"
	"github.com/lumen-ui/lumen/internal/config"
	"github.com/lumen-ui/lumen/pkg/live"
	"github.com/lumen-ui/lumen/pkg/vdom"
)

func main() {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		log.Fatal(err)
	}

	server := live.NewServer(cfg, App())

	log.Printf("Serving at %s", cfg.URL())
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}

// App is the root component.
func App() *vdom.Definition {
	return &vdom.Definition{
		Name: "app",
		Render: func(ctx vdom.Ctx) *vdom.VNode {
			return el.Main(el.ID("app"),
				el.H1(el.Text("Welcome to {{.ProjectName}}")),
				el.P(el.Text("{{.Description}}")),
			)
		},
	}
}
`,
			"go.mod": `module {{.ModulePath}}

go 1.23

require github.com/lumen-ui/lumen v0.1.0
`,
			"lumen.json": `{
  "name": "{{.ProjectName}}",
  "server": {
    "port": 3000,
    "host": "localhost"
  },
  "log": {
    "level": "info",
    "development": true
  }
}
`,
		},
	}
}

// counterTemplate returns the counter template.
func counterTemplate() *Template {
	return &Template{
		Name:        "counter",
		Description: "A stateful counter with a computed label",
		Files: map[string]string{
			"main.go": `package main

import (
	"fmt"
	"log"

	"github.com/lumen-ui/lumen/el"
	"github.com/lumen-ui/lumen/internal/config"
	"github.com/lumen-ui/lumen/pkg/live"
	"github.com/lumen-ui/lumen/pkg/vdom"
)

func main() {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		log.Fatal(err)
	}

	server := live.NewServer(cfg, Counter())

	log.Printf("Serving at %s", cfg.URL())
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}

// Counter is the root component.
func Counter() *vdom.Definition {
	return &vdom.Definition{
		Name:  "counter",
		State: func() map[string]any { return map[string]any{"count": 0} },
		Methods: map[string]vdom.MethodFunc{
			"increment": func(ctx vdom.Ctx, args ...any) any {
				ctx.Set("count", ctx.Get("count").(int)+1)
				return nil
			},
			"reset": func(ctx vdom.Ctx, args ...any) any {
				ctx.Set("count", 0)
				return nil
			},
		},
		Computed: map[string]func(ctx vdom.Ctx) any{
			"label": func(ctx vdom.Ctx) any {
				n := ctx.Get("count").(int)
				if n == 1 {
					return "1 click"
				}
				return fmt.Sprintf("%d clicks", n)
			},
		},
		Render: func(ctx vdom.Ctx) *vdom.VNode {
			return el.Main(el.ID("app"),
				el.H1(el.Text("{{.ProjectName}}")),
				el.Button(
					el.On("click", ctx.Get("increment")),
					el.Dyn(ctx.Get("label").(string)),
				),
				el.Button(
					el.On("click", ctx.Get("reset")),
					el.Text("Reset"),
				),
			)
		},
	}
}
`,
			"go.mod": `module {{.ModulePath}}

go 1.23

require github.com/lumen-ui/lumen v0.1.0
`,
			"lumen.json": `{
  "name": "{{.ProjectName}}",
  "server": {
    "port": 3000,
    "host": "localhost"
  },
  "log": {
    "level": "info",
    "development": true
  }
}
`,
		},
	}
}

// todoTemplate returns the todo template.
func todoTemplate() *Template {
	return &Template{
		Name:        "todo",
		Description: "A keyed todo list with add and remove",
		Files: map[string]string{
			"main.go": `package main

import (
	"fmt"
	"log"

	"github.com/lumen-ui/lumen/el"
	"github.com/lumen-ui/lumen/internal/config"
	"github.com/lumen-ui/lumen/pkg/live"
	"github.com/lumen-ui/lumen/pkg/reactive"
	"github.com/lumen-ui/lumen/pkg/vdom"
)

func main() {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		log.Fatal(err)
	}

	server := live.NewServer(cfg, TodoApp())

	log.Printf("Serving at %s", cfg.URL())
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}
}

type todo struct {
	ID   int
	Text string
}

// TodoApp is the root component.
func TodoApp() *vdom.Definition {
	return &vdom.Definition{
		Name: "todo-app",
		State: func() map[string]any {
			return map[string]any{
				"todos":  reactive.NewList(),
				"nextID": 1,
			}
		},
		Methods: map[string]vdom.MethodFunc{
			"add": func(ctx vdom.Ctx, args ...any) any {
				text, _ := args[0].(string)
				if text == "" {
					return nil
				}
				id := ctx.Get("nextID").(int)
				list := ctx.Get("todos").(*reactive.List)
				list.Append(todo{ID: id, Text: text})
				ctx.Set("nextID", id+1)
				return nil
			},
			"remove": func(ctx vdom.Ctx, args ...any) any {
				id, _ := args[0].(int)
				list := ctx.Get("todos").(*reactive.List)
				for i := 0; i < list.Len(); i++ {
					if list.Get(i).(todo).ID == id {
						list.Remove(i)
						return nil
					}
				}
				return nil
			},
		},
		Render: func(ctx vdom.Ctx) *vdom.VNode {
			list := ctx.Get("todos").(*reactive.List)
			items := make([]*vdom.VNode, 0, list.Len())
			for i := 0; i < list.Len(); i++ {
				t := list.Get(i).(todo)
				items = append(items, el.Li(
					el.Key(t.ID),
					el.Text(t.Text),
					el.Button(
						el.On("click", ctx.Get("remove")),
						el.Text("x"),
					),
				))
			}
			return el.Main(el.ID("app"),
				el.H1(el.Text("{{.ProjectName}}")),
				el.P(el.Text(fmt.Sprintf("%d items", list.Len()))),
				el.Ul(items),
			)
		},
	}
}
`,
			"go.mod": `module {{.ModulePath}}

go 1.23

require github.com/lumen-ui/lumen v0.1.0
`,
			"lumen.json": `{
  "name": "{{.ProjectName}}",
  "server": {
    "port": 3000,
    "host": "localhost"
  },
  "log": {
    "level": "info",
    "development": true
  }
}
`,
		},
	}
}
