// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/contact-finder/internal/ledger"
	"github.com/pdiddy/contact-finder/internal/network"
	"github.com/pdiddy/contact-finder/internal/report"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Search companies for contacts and write one CSV per company",
	Long: `Find resolves each company, searches three role groups (HR/Recruiting,
Product Leadership, Senior Leadership) near the given location, and writes
<Company>_<DD-MM-YYYY>_Contact.csv for each company.

The total count is split roughly 30/30/40 across the groups. Searches pause
a random 2-5 seconds after each accepted profile; a full run can take a few
minutes. Credentials are read from credentials.json (or a secrets directory
with username and password files).`,
	Example: `  contact-finder find --companies "Acme Inc,Globex" --location London --count 10`,
	RunE:    runFind,
}

func init() {
	findCmd.Flags().String("companies", "", "comma-separated list of companies (max 5)")
	findCmd.Flags().String("location", "", "location to search in (e.g. 'Bangalore', 'London')")
	findCmd.Flags().Int("count", 10, "total number of people to fetch per company (max 20)")
	findCmd.Flags().String("out-dir", ".", "directory for CSV reports")
	findCmd.Flags().String("credentials", "credentials.json", "credentials JSON file or secrets directory")
	findCmd.Flags().Duration("min-delay", network.DefaultMinDelay, "minimum pause after each accepted profile")
	findCmd.Flags().Duration("max-delay", network.DefaultMaxDelay, "maximum pause after each accepted profile")
	findCmd.Flags().String("ledger", "", "SQLite file recording run history (empty disables)")
	findCmd.MarkFlagRequired("companies")
	findCmd.MarkFlagRequired("location")

	viper.BindPFlag("report.default_count", findCmd.Flags().Lookup("count"))
	viper.BindPFlag("report.output_dir", findCmd.Flags().Lookup("out-dir"))
	viper.BindPFlag("network.credentials", findCmd.Flags().Lookup("credentials"))
	viper.BindPFlag("network.min_delay", findCmd.Flags().Lookup("min-delay"))
	viper.BindPFlag("network.max_delay", findCmd.Flags().Lookup("max-delay"))
	viper.BindPFlag("ledger.path", findCmd.Flags().Lookup("ledger"))

	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	rawCompanies, _ := cmd.Flags().GetString("companies")
	location, _ := cmd.Flags().GetString("location")
	in := report.Input{
		Companies:  report.ParseCompanies(rawCompanies),
		Location:   location,
		TotalCount: cfg.Report.DefaultCount,
	}
	if err := report.Validate(in.Companies, in.Location, in.TotalCount); err != nil {
		return err
	}
	if cfg.Network.MinDelay > cfg.Network.MaxDelay {
		return fmt.Errorf("min-delay %v exceeds max-delay %v", cfg.Network.MinDelay, cfg.Network.MaxDelay)
	}

	session := network.NewSession(
		network.CredentialsFrom(cfg.Network.CredentialsPath),
		&network.HTTPDialer{Config: cfg.Network, Logger: logger},
		logger,
	)
	pacer := &network.Pacer{Min: cfg.Network.MinDelay, Max: cfg.Network.MaxDelay}

	o := &report.Orchestrator{
		Searcher:  network.NewSearcher(session, pacer, logger),
		OutputDir: cfg.Report.OutputDir,
		Out:       cmd.OutOrStdout(),
		Logger:    logger,
	}

	if cfg.Ledger.Path != "" {
		l, err := ledger.Open(cfg.Ledger.Path)
		if err != nil {
			return err
		}
		defer l.Close()
		o.Recorder = l
	}

	summary, err := o.Run(cmd.Context(), in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d reports, %d contacts", len(summary.Reports), summary.Contacts())
	if f := summary.Failures(); f > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), " (%d searches returned partial or no results)", f)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
