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
	"encoding/json"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/apex/log"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blacktop/devirt/internal/commands/vm"
	"github.com/blacktop/devirt/internal/config"
	"github.com/blacktop/devirt/pkg/cil"
	"github.com/blacktop/devirt/pkg/cil/snapshot"
	"github.com/blacktop/devirt/pkg/csvm"
)

func init() {
	rootCmd.AddCommand(handlersCmd)
	handlersCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	handlersCmd.Flags().BoolP("fingerprint", "f", false, "Show the full handler fingerprints")
	viper.BindPFlag("handlers.json", handlersCmd.Flags().Lookup("json"))
	viper.BindPFlag("handlers.fingerprint", handlersCmd.Flags().Lookup("fingerprint"))
}

// handlersCmd represents the handlers command
var handlersCmd = &cobra.Command{
	Use:     "handlers <module.yml>",
	Aliases: []string{"h"},
	Short:   "Classify the VM opcode handlers",
	Example: heredoc.Doc(`
		# Print the opcode table of a VM runtime
		❯ devirt handlers VMRuntime.yml
		# Find the runtime of a protected module and print its opcode table as JSON
		❯ devirt handlers App.yml --json`),
	Args:              cobra.ExactArgs(1),
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
		mod, err := snapshot.Open(args[0])
		if err != nil {
			return err
		}
		loader, err := snapshot.NewLoader(conf.Snapshot.CacheSize)
		if err != nil {
			return err
		}

		table, err := vm.Detect(mod, catalogs, func(path string) (cil.ModuleView, error) {
			if conf.Snapshot.Runtime != "" {
				path = conf.Snapshot.Runtime
			}
			return loader.Load(path)
		})
		if err != nil {
			return err
		}

		if viper.GetBool("handlers.json") {
			dat, err := json.MarshalIndent(table, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal opcode table: %w", err)
			}
			fmt.Println(string(dat))
			return nil
		}

		log.WithFields(log.Fields{
			"module":  table.Module,
			"catalog": table.Catalog,
		}).Info("CSVM opcode table")
		if Verbose {
			fmt.Print(table.String())
			return nil
		}
		tw := tablewriter.NewWriter(os.Stdout)
		header := []string{"Index", "Handler", "Type", "Digest"}
		if viper.GetBool("handlers.fingerprint") {
			header = append(header, "Fingerprint")
		}
		tw.SetHeader(header)
		for _, h := range table.Handlers {
			row := []string{fmt.Sprintf("%04X", h.Index), h.Name, h.Type, h.Digest}
			if viper.GetBool("handlers.fingerprint") {
				row = append(row, h.Fingerprint)
			}
			tw.Append(row)
		}
		tw.SetAlignment(tablewriter.ALIGN_LEFT)
		tw.Render()
		return nil
	},
}
