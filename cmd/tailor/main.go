package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"resumetuner/internal/bootstrap"
	"resumetuner/internal/domain"
	"resumetuner/internal/usecase"
	"resumetuner/pkg/config"
	"resumetuner/pkg/logging"
	"resumetuner/pkg/pdfmd"
)

// noTemplate is the --latex value when the flag is given without a file.
const noTemplate = "-"

type options struct {
	configFile string
	resume     string
	job        string
	jobURL     string
	latex      string
	pdf        string
	out        string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options
	root := &cobra.Command{
		Use:   "tailor",
		Short: "Tailor a plain-text resume to a job description",
		Long: `tailor runs the resume tailoring pipeline locally.

Example:
  tailor --resume resume.txt --job job.txt
  tailor --resume resume.txt --job-url https://boards.greenhouse.io/acme/jobs/1 --pdf resume.pdf
  tailor --resume resume.txt --job job.txt --latex example.tex --out resume.tex`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTailor(cmd, o)
		},
	}
	root.PersistentFlags().StringVar(&o.configFile, "config", os.Getenv("CONFIG_FILE"), "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "log every pipeline stage")

	f := root.Flags()
	f.StringVar(&o.resume, "resume", "", "resume .txt file (required)")
	f.StringVar(&o.job, "job", "", "job description .txt file")
	f.StringVar(&o.jobURL, "job-url", "", "job posting URL to extract the description from")
	f.StringVar(&o.latex, "latex", "", "produce LaTeX, optionally following an example template file")
	f.Lookup("latex").NoOptDefVal = noTemplate
	f.StringVar(&o.pdf, "pdf", "", "also print the tailored resume to this PDF file")
	f.StringVarP(&o.out, "out", "o", "", "write the result to this file instead of stdout")
	_ = root.MarkFlagRequired("resume")
	root.MarkFlagsMutuallyExclusive("job", "job-url")
	root.MarkFlagsOneRequired("job", "job-url")

	root.AddCommand(newConvertCmd())
	return root
}

func runTailor(cmd *cobra.Command, o options) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	app, err := setup(ctx, o.configFile, o.verbose)
	if err != nil {
		return err
	}
	defer app.Close()

	req := usecase.TailorRequest{JobURL: o.jobURL}
	if req.ResumeText, err = readTextFile("resume", o.resume); err != nil {
		return err
	}
	if o.job != "" {
		if req.JobText, err = readTextFile("job", o.job); err != nil {
			return err
		}
	}
	if o.latex != "" {
		req.Format = true
		if o.latex != noTemplate {
			data, err := os.ReadFile(o.latex)
			if err != nil {
				return errors.Wrapf(err, "failed to read LaTeX template %s", o.latex)
			}
			req.Template = string(data)
		}
	}

	run, err := app.Service.Tailor(ctx, req)
	if err != nil {
		return err
	}

	if o.pdf != "" {
		pdf, err := app.Service.RenderPDF(ctx, run.Get(domain.FieldOptimizedResume))
		if err != nil {
			return err
		}
		if err := os.WriteFile(o.pdf, pdf, 0o644); err != nil {
			return errors.Wrapf(err, "failed to write %s", o.pdf)
		}
		logrus.WithField("path", o.pdf).Info("pdf written")
	}
	return write(cmd, o.out, run.Final())
}

func newConvertCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "convert <resume.pdf>",
		Short: "Convert a PDF resume to Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, "failed to read %s", args[0])
			}
			md, err := pdfmd.Convert(data)
			if err != nil {
				return err
			}
			return write(cmd, out, md)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the Markdown to this file instead of stdout")
	return cmd
}

func setup(ctx context.Context, configFile string, verbose bool) (*bootstrap.App, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if _, err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, err
	}
	return bootstrap.Build(ctx, cfg)
}

func readTextFile(field, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}
	return usecase.DecodeText(field, filepath.Base(path), data)
}

func write(cmd *cobra.Command, path, text string) error {
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	return errors.Wrapf(os.WriteFile(path, []byte(text), 0o644), "failed to write %s", path)
}
