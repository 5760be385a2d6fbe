package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lvm-segments-visualizer/internal/chart"
	"lvm-segments-visualizer/internal/config"
	"lvm-segments-visualizer/internal/lvm"
	"lvm-segments-visualizer/internal/report"
	"lvm-segments-visualizer/pkg/types"
)

// Build-time variables (set via -ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lvm-segments-visualizer",
	Short: "Parse and visualize LVM physical extent allocation",
	Long: `lvm-segments-visualizer reads pvdisplay segment reports and shows how
logical volumes are laid out across physical volumes: per-device usage,
RAID data and metadata components resolved to their parent volumes, and
free space gaps, as a text summary, JSON, or an HTML chart.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lvm-segments-visualizer %s (%s, built %s)\n", version, commit, buildTime)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [report-file]",
	Short: "Analyze a pvdisplay report",
	Long: `Analyze parses a saved "pvdisplay -m --units m" report, or runs
pvdisplay itself when no file is given, and prints a usage summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		htmlPath, _ := cmd.Flags().GetString("html")

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		var text string
		if len(args) == 1 {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading report %s: %w", args[0], err)
			}
			text = string(data)
		} else {
			tool := lvm.NewPVDisplayTool(cfg.PVDisplayPath, cfg.UseSudo)
			text, err = tool.Run()
			if err != nil {
				return err
			}
		}

		result, err := lvm.Parse(text)
		if err != nil {
			return err
		}
		if result.Len() == 0 {
			return fmt.Errorf("no physical volumes found in report")
		}

		return writeOutput(cfg, result, jsonOut, htmlPath)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Prometheus exporter and HTTP visualization server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		return serve(cfg)
	},
}

// writeOutput emits the requested analyze outputs
func writeOutput(cfg *config.Config, result *types.ParseResult, jsonOut bool, htmlPath string) error {
	if jsonOut {
		if err := report.WriteJSON(os.Stdout, result); err != nil {
			return err
		}
	} else {
		report.WriteSummary(os.Stdout, result)
	}

	if htmlPath != "" {
		if htmlPath == "default" {
			htmlPath = cfg.ChartPath
		}
		if err := chart.WriteFile(htmlPath, result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Chart written to %s\n", htmlPath)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is /etc/lvm-segments-visualizer/config.yaml)")

	analyzeCmd.Flags().Bool("json", false, "Output as JSON")
	analyzeCmd.Flags().String("html", "", "Write HTML chart to this path (\"default\" for configured path)")
	analyzeCmd.Flags().Lookup("html").NoOptDefVal = "default"

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
