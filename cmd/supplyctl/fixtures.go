package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ettle/strcase"

	"github.com/qloax/niks-aqua/components/dashboard"
	"github.com/qloax/niks-aqua/pkg/fixturesync"
)

type fixturesCmd struct {
	Export   exportCmd   `cmd:"" help:"Write the built-in fixtures as a YAML document."`
	Validate validateCmd `cmd:"" help:"Check a fixture document against the data invariants."`
	Pull     pullCmd     `cmd:"" help:"Download a fixture document from an ERP export endpoint."`
}

type exportCmd struct {
	Out       string `required:"" type:"path" help:"Output file, or directory to derive the file name from --name."`
	Name      string `default:"NIKS Aqua Fixtures" help:"Document name."`
	Overwrite bool   `help:"Replace an existing file."`
}

func (cmd *exportCmd) Run(_ context.Context, out io.Writer) error {
	doc := dashboard.DocumentFromFixtures(dashboard.DefaultFixtures())
	doc.Name = cmd.Name
	path := exportPath(cmd.Out, cmd.Name)
	if err := writeDocument(path, doc, cmd.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Wrote %s\n", path)
	return nil
}

type validateCmd struct {
	Path string `arg:"" type:"existingfile" help:"Fixture document to validate."`
}

func (cmd *validateCmd) Run(_ context.Context, out io.Writer) error {
	doc, err := dashboard.ReadFixtures(cmd.Path)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ %s: %d orders, %d stock items, %d partners, %d alerts\n",
		cmd.Path, len(doc.Orders), len(doc.Inventory), len(doc.Partners), len(doc.Alerts))
	for _, item := range doc.Inventory {
		if item.StatusMismatch() {
			fmt.Fprintf(out, "! %s stored status %s, stock level suggests %s\n", item.SKU, item.Status, item.DerivedStatus())
		}
	}
	return nil
}

type pullCmd struct {
	URL       string `required:"" env:"FIXTURES_URL" help:"ERP base URL."`
	Path      string `default:"/fixtures" help:"Export endpoint path."`
	APIKey    string `name:"api-key" env:"FIXTURES_API_KEY" help:"Bearer token for the export endpoint."`
	Out       string `required:"" type:"path" help:"Output file or directory."`
	Overwrite bool   `help:"Replace an existing file."`
}

func (cmd *pullCmd) Run(ctx context.Context, out io.Writer) error {
	client, err := fixturesync.NewHTTPClient(fixturesync.HTTPConfig{BaseURL: cmd.URL, Path: cmd.Path, APIKey: cmd.APIKey})
	if err != nil {
		return err
	}
	doc, err := client.FetchFixtures(ctx)
	if err != nil {
		return err
	}
	name := doc.Name
	if name == "" {
		name = "erp fixtures"
	}
	path := exportPath(cmd.Out, name)
	if err := writeDocument(path, doc, cmd.Overwrite); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Pulled %s into %s\n", cmd.URL, path)
	return nil
}

// exportPath appends a snake_case file name when target is a directory.
func exportPath(target, name string) string {
	if info, err := os.Stat(target); (err == nil && info.IsDir()) || strings.HasSuffix(target, string(os.PathSeparator)) {
		return filepath.Join(target, strcase.ToSnake(name)+".yaml")
	}
	return target
}

func writeDocument(path string, doc *dashboard.FixtureDocument, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("supplyctl: %s already exists (use --overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("supplyctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("supplyctl: create %s: %w", path, err)
	}
	defer file.Close()
	return dashboard.EncodeFixtures(file, doc)
}
