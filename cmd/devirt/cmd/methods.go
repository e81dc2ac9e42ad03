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
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blacktop/devirt/internal/commands/vm"
	"github.com/blacktop/devirt/pkg/cil/snapshot"
	"github.com/blacktop/devirt/pkg/csvm"
)

func init() {
	rootCmd.AddCommand(methodsCmd)
	methodsCmd.Flags().BoolP("json", "j", false, "Output as JSON")
	viper.BindPFlag("methods.json", methodsCmd.Flags().Lookup("json"))
}

// methodsCmd represents the methods command
var methodsCmd = &cobra.Command{
	Use:     "methods <module.yml>",
	Aliases: []string{"m"},
	Short:   "List the virtualized methods of a module",
	Example: heredoc.Doc(`
		# List the _CSVM method table
		❯ devirt methods App.yml`),
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: moduleArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	RunE: func(cmd *cobra.Command, args []string) error {
		mod, err := snapshot.Open(args[0])
		if err != nil {
			return err
		}
		methods, err := vm.Methods(mod)
		if err != nil {
			return err
		}

		if viper.GetBool("methods.json") {
			dat, err := json.MarshalIndent(methods, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal method table: %w", err)
			}
			fmt.Println(string(dat))
			return nil
		}

		data, _ := mod.Resource(csvm.ResourceName)
		log.WithFields(log.Fields{
			"methods":  humanize.Comma(int64(len(methods))),
			"resource": humanize.Bytes(uint64(len(data))),
		}).Info(mod.Name())

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Token", "GUID", "Method", "Locals", "Code", "Exceptions"})
		for _, m := range methods {
			table.Append(m.Row())
		}
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.Render()
		return nil
	},
}
