/*
Copyright © 2018-2023 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/apex/log"
	"github.com/caarlos0/ctrlc"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blacktop/devirt/internal/batch"
	"github.com/blacktop/devirt/internal/colors"
	"github.com/blacktop/devirt/internal/config"
	"github.com/blacktop/devirt/internal/db"
	"github.com/blacktop/devirt/internal/model"
	"github.com/blacktop/devirt/internal/utils"
	"github.com/blacktop/devirt/pkg/csvm"
)

func init() {
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().IntP("concurrency", "j", 0, "Number of modules restored in parallel (default: number of CPUs)")
	restoreCmd.Flags().Bool("keep-resource", false, "Keep the _CSVM resource in restored modules")
	restoreCmd.Flags().StringP("output", "o", "", "Folder to save restored snapshots")
	restoreCmd.MarkFlagDirname("output")
	restoreCmd.Flags().Bool("progress", false, "Show a progress bar")
	restoreCmd.Flags().Int("cache-size", 0, "Number of parsed runtime modules kept in memory")
	viper.BindPFlag("restore.concurrency", restoreCmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("restore.keep-resource", restoreCmd.Flags().Lookup("keep-resource"))
	viper.BindPFlag("restore.output", restoreCmd.Flags().Lookup("output"))
	viper.BindPFlag("restore.progress", restoreCmd.Flags().Lookup("progress"))
	viper.BindPFlag("snapshot.cache-size", restoreCmd.Flags().Lookup("cache-size"))
}

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:     "restore <module.yml>...",
	Aliases: []string{"r"},
	Short:   "Restore virtualized methods",
	Example: heredoc.Doc(`
		# Restore every virtualized method and save the result next to the input
		❯ devirt restore App.yml --output .
		# Restore a folder of modules 4 at a time and keep a sqlite report
		❯ devirt restore 'samples/*.yml' -j 4 --db sqlite --output restored/
		# Only try the newer handler catalogs and leave guessed methods untouched
		❯ devirt restore App.yml --constraint '>= 1.1' --strict`),
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: moduleArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := config.LoadConfig()
		if err != nil {
			return err
		}
		catalogs, err := csvm.SelectCatalogs(conf.Catalog.Constraint)
		if err != nil {
			return err
		}
		paths, err := utils.ExpandInputs(args)
		if err != nil {
			return err
		}

		exec, err := batch.NewExecutor(&batch.Config{
			Concurrency:  conf.Restore.Concurrency,
			Strict:       conf.Restore.Strict,
			KeepResource: conf.Restore.KeepResource,
			Catalogs:     catalogs,
			Runtime:      conf.Snapshot.Runtime,
			CacheSize:    conf.Snapshot.CacheSize,
			Output:       conf.Restore.Output,
			Progress:     conf.Restore.Progress,
			Verbose:      Verbose,
		})
		if err != nil {
			return err
		}
		exec.Register(batch.NewSaveSink(conf.Restore.Output))

		var (
			report db.Database
			run    *model.Run
		)
		if conf.Database.Driver != "" {
			if report, err = openDatabase(conf); err != nil {
				return err
			}
			defer report.Close()
			run = &model.Run{Constraint: conf.Catalog.Constraint, Strict: conf.Restore.Strict, Started: time.Now()}
			if err := report.CreateRun(run); err != nil {
				return fmt.Errorf("failed to record run: %w", err)
			}
			exec.Register(batch.NewDBSink(report, run.ID))
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := ctrlc.Default.Run(ctx, func() error {
			return exec.Execute(ctx, paths)
		}); err != nil {
			if errors.As(err, &ctrlc.ErrorCtrlC{}) {
				log.Warn("Exiting...")
				cancel()
			} else {
				return err
			}
		}

		if run != nil {
			run.Finished = time.Now()
			if err := report.FinishRun(run); err != nil {
				log.WithError(err).Error("Failed to finish run")
			}
			log.WithField("run", run.ID).Info("Saved conversion report")
		}

		stats := exec.Stats()
		printReports(exec.Reports())
		log.Infof("Restored %s methods in %s (%s warned, %s skipped)",
			humanize.Comma(int64(stats.Converted)),
			stats.Duration().Round(time.Millisecond),
			humanize.Comma(int64(stats.Warned)),
			humanize.Comma(int64(stats.Skipped)))
		if stats.Failed > 0 {
			return fmt.Errorf("%d of %d modules failed", stats.Failed, stats.Modules)
		}
		return nil
	},
}

func openDatabase(conf *config.Config) (db.Database, error) {
	var (
		d   db.Database
		err error
	)
	switch conf.Database.Driver {
	case "memory":
		d, err = db.NewInMemory(conf.Database.Path)
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(conf.Database.Path), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database folder: %w", err)
		}
		d, err = db.NewSqlite(conf.Database.Path, conf.Database.BatchSize)
	case "postgres":
		d, err = db.NewPostgres(
			conf.Database.Host,
			conf.Database.Port,
			conf.Database.User,
			conf.Database.Password,
			conf.Database.Name,
		)
	default:
		return nil, fmt.Errorf("unknown database driver %q", conf.Database.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := d.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", conf.Database.Driver, err)
	}
	return d, nil
}

func status(r *batch.Report) string {
	switch {
	case r.Failed():
		return colors.Failure().Sprint("failed: ") + r.Err.Error()
	case !r.Protected():
		return colors.Comment().Sprint("not protected")
	case r.Outcome.Skipped > 0 || r.Outcome.Warned > 0:
		return colors.Warning().Sprint("partial")
	default:
		return colors.Success().Sprint("restored")
	}
}

func printReports(reports []*batch.Report) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Module", "VM", "Catalog", "Converted", "Warned", "Skipped", "Time", "Status"})
	for _, r := range reports {
		row := []string{filepath.Base(r.Path), r.VMName, "", "", "", "", r.Duration.Round(time.Millisecond).String(), status(r)}
		if r.Outcome != nil {
			if r.Outcome.Catalog != nil {
				row[2] = r.Outcome.Catalog.String()
			}
			row[3] = strconv.Itoa(r.Outcome.Converted)
			row[4] = strconv.Itoa(r.Outcome.Warned)
			row[5] = strconv.Itoa(r.Outcome.Skipped)
		}
		table.Append(row)
	}
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.Render()
}
