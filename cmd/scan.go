package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"exposure/pkg/apperrors"
	"exposure/pkg/config"
	"exposure/pkg/console"
	"exposure/pkg/controller"
	"exposure/pkg/entity"
	"exposure/pkg/reports"
	"exposure/pkg/scanservice"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatHTML  = "html"

	viewBoth = "both"

	defaultHTMLOutput = "exposure-report.html"
)

// outputOptions are shared by scan and render.
type outputOptions struct {
	format string
	view   string
	output string
}

func (o *outputOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", formatTable, "Output format (table, json, html)")
	cmd.Flags().StringVar(&o.view, "view", viewBoth, "View to show (executive, technical, both)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Write the report to this file instead of stdout")
}

func (o *outputOptions) validate() error {
	switch o.format {
	case formatTable, formatJSON, formatHTML:
	default:
		return apperrors.NewValidationError("format", fmt.Sprintf("unsupported format %q", o.format))
	}
	if o.view == viewBoth {
		return nil
	}
	if _, ok := reports.ParseView(o.view); !ok {
		return apperrors.NewValidationError("view", fmt.Sprintf("unsupported view %q", o.view))
	}
	return nil
}

// selectedView is "" when both views are requested.
func (o *outputOptions) selectedView() reports.View {
	v, _ := reports.ParseView(o.view)
	return v
}

type scanOptions struct {
	outputOptions
	target     string
	serviceURL string
	yes        bool
}

func createScanCmd(root *rootOptions) *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a domain or IP and show the exposure report",
		Long:  `Submits a target to the scan service and prints the returned report. Without --target the target is asked for interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("service-url") {
				cfg.Scan.ServiceURL = opts.serviceURL
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			in := bufio.NewReader(cmd.InOrStdin())
			target := opts.target
			if strings.TrimSpace(target) == "" {
				target = prompt(in, cmd.OutOrStdout(), "Target (domain or IP): ")
			}
			if !opts.yes && strings.TrimSpace(target) != "" {
				answer := prompt(in, cmd.OutOrStdout(), fmt.Sprintf("Start scan of %s? [y/N]: ", strings.TrimSpace(target)))
				if a := strings.ToLower(answer); a != "y" && a != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Scan aborted")
					return nil
				}
			}

			client := scanservice.NewClient(cfg.Scan.ServiceURL, time.Duration(cfg.Scan.Timeout)*time.Second)
			return runScan(cmd, cfg, client, target, &opts.outputOptions)
		},
	}

	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "Domain or IP to scan")
	cmd.Flags().StringVar(&opts.serviceURL, "service-url", "", "Base URL of the scan service")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip the confirmation prompt")
	opts.addFlags(cmd)

	return cmd
}

func prompt(in *bufio.Reader, out io.Writer, question string) string {
	fmt.Fprint(out, color.CyanString(question))
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

// runScan drives one submission through a controller and writes the result.
func runScan(cmd *cobra.Command, cfg *config.Config, scanner controller.Scanner, target string, opts *outputOptions) error {
	tableOut := cmd.OutOrStdout()
	if opts.format == formatTable && opts.output != "" {
		out, closeFn, err := destination(tableOut, opts.output)
		if err != nil {
			return err
		}
		defer closeFn()
		tableOut = out
	}

	presenter := console.NewPresenter(tableOut, cmd.ErrOrStderr(), opts.selectedView(), opts.format != formatTable)
	ctrl := controller.New(scanner, presenter,
		controller.WithLocale(cfg.App.Locale),
		controller.WithContext(cmd.Context()))
	defer ctrl.Close()

	if _, err := ctrl.Submit(target); err != nil {
		return err
	}
	ctrl.Wait()

	if ctrl.State() != controller.StateSuccess {
		return ctrl.LastError()
	}
	return writeReport(cmd.OutOrStdout(), ctrl.Current(), opts)
}

func writeReport(stdout io.Writer, report *entity.ScanReport, opts *outputOptions) error {
	switch opts.format {
	case formatJSON:
		out, closeFn, err := destination(stdout, opts.output)
		if err != nil {
			return err
		}
		defer closeFn()

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}

	case formatHTML:
		path := opts.output
		if path == "" {
			path = defaultHTMLOutput
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create report file: %w", err)
		}
		defer f.Close()

		active := opts.selectedView()
		if active == "" {
			active = reports.ViewExecutive
		}
		if err := reports.ExportHTML(f, reports.Compose(report), "Exposure Report - "+report.Target, active); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(stdout, "HTML report written to %s\n", path)
	}
	return nil
}

func destination(stdout io.Writer, path string) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
