// Command leads-export writes one month of stored contact submissions to an
// .xlsx workbook.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"contact-intake/pkg/config"
	"contact-intake/pkg/export"
	"contact-intake/pkg/storage"
)

type options struct {
	Bucket string
	Region string
	Dir    string
	Layout string `validate:"omitempty,oneof=date flat"`
	Year   int    `validate:"min=1"`
	Month  int    `validate:"min=1,max=12"`
	Out    string
}

var validate = validator.New()

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(os.Getenv, time.Now).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(lookup config.LookupFunc, now func() time.Time) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "leads-export",
		Short: "Export a month of contact submissions to XLSX",
		Long: `Reads the stored contact submissions for one calendar month from S3
(or a local store with --dir) and writes them to a single-sheet workbook.
Without --year and --month the current UTC month is exported.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			yearSet, monthSet := cmd.Flags().Changed("year"), cmd.Flags().Changed("month")
			if yearSet != monthSet {
				return errors.New("--year and --month must be given together")
			}
			if !yearSet {
				ref := now().UTC()
				opts.Year, opts.Month = ref.Year(), int(ref.Month())
			}
			if err := validate.Struct(opts); err != nil {
				return fmt.Errorf("invalid arguments: %w", err)
			}
			return run(cmd.Context(), cmd.OutOrStdout(), lookup, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Bucket, "bucket", "", "S3 bucket (defaults to AWS_S3_BUCKET)")
	f.StringVar(&opts.Region, "region", "", "AWS region (defaults to AWS_REGION)")
	f.StringVar(&opts.Dir, "dir", "", "read from a local store directory instead of S3")
	f.StringVar(&opts.Layout, "layout", "", "key layout: date or flat (defaults to CONTACT_KEY_LAYOUT, then date)")
	f.IntVar(&opts.Year, "year", 0, "year to export")
	f.IntVar(&opts.Month, "month", 0, "month to export (1-12)")
	f.StringVar(&opts.Out, "out", "", "output .xlsx path (defaults to contact_leads/leads-YYYY-MM.xlsx)")

	return cmd
}

func run(ctx context.Context, w io.Writer, lookup config.LookupFunc, opts *options) error {
	month := time.Month(opts.Month)
	out := opts.Out
	if out == "" {
		out = export.DefaultPath(opts.Year, month)
	}

	layoutName := opts.Layout
	if layoutName == "" {
		layoutName = lookup("CONTACT_KEY_LAYOUT")
	}
	layout := storage.ParseKeyLayout(layoutName)

	var (
		reader storage.Reader
		bucket string
	)
	if opts.Dir != "" {
		reader = storage.NewLocal(opts.Dir)
	} else {
		s3cfg, err := config.ResolveReader(lookup, opts.Bucket, opts.Region)
		if err != nil {
			return err
		}
		r, err := storage.OpenReader(ctx, s3cfg)
		if err != nil {
			return err
		}
		reader, bucket = r, s3cfg.Bucket
	}

	summary, err := export.Month(ctx, reader, layout, opts.Year, month, out)
	if err != nil {
		return err
	}
	summary.Bucket = bucket

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
