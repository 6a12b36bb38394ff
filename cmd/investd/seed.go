package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rsaniceto14/investctl/internal/cli"
	"github.com/rsaniceto14/investctl/internal/model"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo investments into the database",
		Long: `Populate the database with a realistic demo portfolio.

Seeding appends to whatever is already stored; run it against a fresh
database for a predictable starting point.`,
		RunE: runSeed,
	}
}

type seedRecord struct {
	name   string
	typ    string
	amount string
	date   string
}

var seedRecords = []seedRecord{
	{"Tesouro Selic 2029", "Renda Fixa", "12500.00", "2023-03-10"},
	{"Tesouro IPCA+ 2035", "Renda Fixa", "8300.50", "2023-05-22"},
	{"CDB Banco Inter 110% CDI", "Renda Fixa", "15000.00", "2023-08-01"},
	{"LCI Caixa 95% CDI", "Renda Fixa", "20000.00", "2024-01-15"},
	{"LCA Itaú 93% CDI", "Renda Fixa", "10000.00", "2024-02-20"},
	{"Debênture Vale 2030", "Renda Fixa", "5000.00", "2024-04-02"},
	{"PETR4", "Ações", "7420.80", "2023-02-14"},
	{"VALE3", "Ações", "6180.25", "2023-04-03"},
	{"ITUB4", "Ações", "4350.00", "2023-06-19"},
	{"BBAS3", "Ações", "3890.40", "2023-09-27"},
	{"WEGE3", "Ações", "5275.60", "2024-01-08"},
	{"TAEE11", "Ações", "2940.00", "2024-03-12"},
	{"FII HGLG11", "Imóveis", "9860.00", "2023-07-05"},
	{"FII MXRF11", "Imóveis", "3120.90", "2023-10-16"},
	{"FII KNRI11", "Imóveis", "7545.00", "2024-02-01"},
	{"Apê Centro", "Imóveis", "185000.00", "2022-11-30"},
	{"Terreno Litoral Norte", "Imóveis", "92000.00", "2023-12-18"},
	{"Bitcoin", "Criptomoedas", "11200.45", "2023-01-20"},
	{"Ethereum", "Criptomoedas", "4875.30", "2023-03-29"},
	{"Solana", "Criptomoedas", "1530.75", "2024-02-26"},
	{"Cardano", "Criptomoedas", "640.10", "2024-04-15"},
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.NewOptions(len(seedRecords),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Seeding investments...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(os.Stderr)
		}),
	)

	for _, rec := range seedRecords {
		amount, err := decimal.NewFromString(rec.amount)
		if err != nil {
			return fmt.Errorf("bad seed amount %q: %w", rec.amount, err)
		}
		date, err := time.Parse("2006-01-02", rec.date)
		if err != nil {
			return fmt.Errorf("bad seed date %q: %w", rec.date, err)
		}

		inv := model.Investment{Name: rec.name, Type: rec.typ, Amount: amount, Date: date}
		if err := store.CreateInvestment(ctx, &inv); err != nil {
			return fmt.Errorf("failed to seed %q: %w", rec.name, err)
		}
		_ = bar.Add(1)
	}

	count, err := store.CountInvestments(ctx)
	if err != nil {
		return fmt.Errorf("failed to count investments: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Seeded %d investments (%d now in store)", len(seedRecords), count)))
	return nil
}
