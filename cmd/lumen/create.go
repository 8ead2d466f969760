package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumen-ui/lumen/internal/config"
	"github.com/lumen-ui/lumen/internal/errors"
	"github.com/lumen-ui/lumen/internal/templates"
)

func createCmd() *cobra.Command {
	var (
		templateName string
		modulePath   string
	)

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new Lumen project",
		Long: `Create a new project directory from a template.

Available templates: ` + strings.Join(templates.List(), ", ") + `

Examples:
  lumen create myapp
  lumen create myapp --template=counter
  lumen create . --module=example.com/myapp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(args[0], templateName, modulePath)
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", "minimal", "Project template to use")
	cmd.Flags().StringVarP(&modulePath, "module", "m", "", "Go module path (default example.com/<name>)")

	return cmd
}

func runCreate(name, templateName, modulePath string) error {
	tmpl, err := templates.Get(templateName)
	if err != nil {
		return err
	}

	dir := name
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create project directory: %w", err)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, config.ConfigFileName)); err == nil {
		return errors.New("L101").
			WithDetail(filepath.Join(dir, config.ConfigFileName) + " already exists").
			WithSuggestion("Pick a different directory or remove the existing project")
	}

	projectName := filepath.Base(dir)
	if dir == "." {
		if abs, err := filepath.Abs(dir); err == nil {
			projectName = filepath.Base(abs)
		}
	}
	if modulePath == "" {
		modulePath = "example.com/" + projectName
	}

	cfg := templates.Config{
		ProjectName: projectName,
		ModulePath:  modulePath,
		Description: "A Lumen app",
	}
	if err := tmpl.Create(dir, cfg); err != nil {
		return err
	}

	printBanner()
	success("Created %s from the %s template", projectName, tmpl.Name)
	for rel := range tmpl.Files {
		info("  %s", filepath.Join(dir, rel))
	}
	info("Run 'lumen serve' inside the project to start the live server")
	return nil
}
