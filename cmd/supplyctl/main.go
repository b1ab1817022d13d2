package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"

	"github.com/qloax/niks-aqua/components/assistant"
	"github.com/qloax/niks-aqua/components/dashboard"
	"github.com/qloax/niks-aqua/pkg/fixturesync"
)

type cli struct {
	Fixtures fixturesCmd `cmd:"" help:"Export, validate or pull fixture documents."`
	KPIs     kpisCmd     `cmd:"" name:"kpis" help:"List the KPI cards for a role."`
	Ask      askCmd      `cmd:"" help:"Send a one-shot query to the supply chain assistant."`
	Tick     tickCmd     `cmd:"" help:"Advance the live counter simulator and print each snapshot."`
}

func main() {
	parser := newParser(os.Stdout)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	kctx.FatalIfErrorf(kctx.Run())
}

func newParser(out io.Writer, opts ...kong.Option) *kong.Kong {
	options := append([]kong.Option{
		kong.Name("supplyctl"),
		kong.Description("Operator utility for the NIKS-AQUA supply chain dashboard."),
		kong.UsageOnError(),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
		kong.BindTo(out, (*io.Writer)(nil)),
	}, opts...)
	return kong.Must(&cli{}, options...)
}

type kpisCmd struct {
	Role         string `default:"Manufacturer" enum:"Manufacturer,Wholesaler,Retailer" help:"Role perspective."`
	FixturesPath string `name:"fixtures" type:"path" help:"Fixture document to read instead of the built-in data."`
	JSON         bool   `name:"json" help:"Print JSON instead of a table."`
}

func (cmd *kpisCmd) Run(ctx context.Context, out io.Writer) error {
	role, err := dashboard.ParseRole(cmd.Role)
	if err != nil {
		return err
	}
	store, err := loadStore(ctx, cmd.FixturesPath)
	if err != nil {
		return err
	}
	kpis := store.KPIs(role)
	if cmd.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(kpis)
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tVALUE\tTREND\tCATEGORY")
	for _, kpi := range kpis {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", kpi.Label, kpi.Value, trendLabel(kpi.Trend), kpi.Category)
	}
	return w.Flush()
}

func trendLabel(trend float64) string {
	sign := "+"
	if trend < 0 {
		sign = "-"
	}
	return sign + dashboard.FormatPercent(trend)
}

type askCmd struct {
	Prompt  string        `arg:"" help:"Question for the assistant."`
	Role    string        `default:"Manufacturer" enum:"Manufacturer,Wholesaler,Retailer" help:"Role perspective attached to the query."`
	APIKey  string        `name:"api-key" env:"API_KEY" help:"Gemini API key; empty or placeholder runs offline."`
	Model   string        `default:"gemini-3-flash-preview" help:"Model name."`
	Latency time.Duration `default:"800ms" help:"Offline reply latency."`
}

func (cmd *askCmd) Run(ctx context.Context, out io.Writer) error {
	bridge, err := assistant.NewBridge(ctx, assistant.Options{
		APIKey:  cmd.APIKey,
		Model:   cmd.Model,
		Offline: assistant.NewOfflineGenerator(assistant.WithOfflineLatency(cmd.Latency)),
	})
	if err != nil {
		return err
	}
	defer bridge.Close()
	fmt.Fprintln(out, bridge.Ask(ctx, cmd.Prompt, cmd.Role))
	return nil
}

type tickCmd struct {
	Count int    `default:"5" help:"Number of ticks to run."`
	Seed  uint64 `help:"Random seed; zero uses the clock."`
}

func (cmd *tickCmd) Run(_ context.Context, out io.Writer) error {
	opts := dashboard.TickerOptions{}
	if cmd.Seed != 0 {
		opts.Source = newSeededSource(cmd.Seed)
	}
	ticker := dashboard.NewTicker(opts)
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICK\tPRODUCTION\tREVENUE")
	for i := 0; i < cmd.Count; i++ {
		snap := ticker.Tick()
		fmt.Fprintf(w, "%d\t%s\t%s\n", snap.Ticks, dashboard.FormatLitres(snap.Production), dashboard.FormatCurrency(snap.Revenue))
	}
	return w.Flush()
}

func loadStore(ctx context.Context, path string) (dashboard.FixtureStore, error) {
	if path == "" {
		return dashboard.DefaultFixtures(), nil
	}
	return fixturesync.Load(ctx, fixturesync.FileSource{Path: path})
}
