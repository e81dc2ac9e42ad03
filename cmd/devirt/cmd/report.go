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
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/apex/log"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blacktop/devirt/internal/config"
	"github.com/blacktop/devirt/internal/utils"
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().Uint("module", 0, "Show the methods of one module report")
	viper.BindPFlag("report.module", reportCmd.Flags().Lookup("module"))
}

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <run-id>",
	Short: "Show a saved conversion report",
	Example: heredoc.Doc(`
		# List the modules of run 3
		❯ devirt report 3 --db sqlite
		# Show the methods of module report 12
		❯ devirt report 3 --db sqlite --module 12`),
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		runID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %v", args[0], err)
		}
		conf, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if conf.Database.Driver == "" {
			return fmt.Errorf("no database configured: set database.driver in the config or DEVIRT_DATABASE_DRIVER")
		}
		d, err := openDatabase(conf)
		if err != nil {
			return err
		}
		defer d.Close()

		if id := viper.GetUint("report.module"); id != 0 {
			mod, err := d.Get(id)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"vm":      mod.VMName,
				"catalog": mod.Catalog,
			}).Info(mod.Path)
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Token", "Method", "Restored", "Skipped", "Warnings", "Error"})
			for _, m := range mod.Methods {
				table.Append([]string{
					fmt.Sprintf("%08X", m.Token),
					m.Name,
					strconv.FormatBool(m.Restored),
					strconv.FormatBool(m.Skipped),
					strings.Join(m.WarningList(), "; "),
					m.Error,
				})
			}
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.Render()
			for _, m := range mod.Methods {
				for _, w := range m.WarningList() {
					utils.Indent(log.Debug, 2)(fmt.Sprintf("%08X: %s", m.Token, w))
				}
			}
			return nil
		}

		mods, err := d.List(uint(runID))
		if err != nil {
			return err
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Module", "VM", "Catalog", "Converted", "Warned", "Skipped", "Resource", "Error"})
		for _, m := range mods {
			resource := "kept"
			if m.ResourceRemoved {
				resource = "removed"
			}
			table.Append([]string{
				strconv.FormatUint(uint64(m.ID), 10),
				m.Name,
				m.VMName,
				m.Catalog,
				strconv.Itoa(m.Converted),
				strconv.Itoa(m.Warned),
				strconv.Itoa(m.Skipped),
				resource,
				m.Error,
			})
		}
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.Render()
		return nil
	},
}
