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

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/apex/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blacktop/devirt/internal/colors"
	"github.com/blacktop/devirt/internal/commands/disass"
	"github.com/blacktop/devirt/internal/config"
	"github.com/blacktop/devirt/internal/utils"
	"github.com/blacktop/devirt/pkg/cil/snapshot"
	"github.com/blacktop/devirt/pkg/csvm"
)

func init() {
	rootCmd.AddCommand(disassCmd)
	disassCmd.Flags().StringP("token", "t", "", "Metadata token of the virtualized method (e.g. 0x06000001)")
	disassCmd.Flags().BoolP("diff", "d", false, "Show a unified diff of the stub and the restored body")
	disassCmd.Flags().String("dot", "", "Write the control flow graph of the restored body to a DOT file ('-' for stdout)")
	disassCmd.MarkFlagRequired("token")
	viper.BindPFlag("disass.token", disassCmd.Flags().Lookup("token"))
	viper.BindPFlag("disass.diff", disassCmd.Flags().Lookup("diff"))
	viper.BindPFlag("disass.dot", disassCmd.Flags().Lookup("dot"))
}

// disassCmd represents the disass command
var disassCmd = &cobra.Command{
	Use:     "disass <module.yml>",
	Aliases: []string{"dis"},
	Short:   "Restore one virtualized method and print its listing",
	Example: heredoc.Doc(`
		# Restore a single method and print the recovered CIL
		❯ devirt disass App.yml --token 0x06000001
		# Show what changed against the VM stub
		❯ devirt disass App.yml --token 0x06000001 --diff
		# Render the control flow graph
		❯ devirt disass App.yml --token 0x06000001 --dot - | dot -Tsvg > Fill.svg`),
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
		token, err := utils.ParseToken(viper.GetString("disass.token"))
		if err != nil {
			return err
		}
		mod, err := snapshot.Open(args[0])
		if err != nil {
			return err
		}

		m, err := disass.Restore(mod, &disass.Config{
			Token:    token,
			Catalogs: catalogs,
			Strict:   conf.Restore.Strict,
			Runtime:  conf.Snapshot.Runtime,
			Color:    colors.Enabled(),
		})
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"catalog":  m.Table.Catalog(),
			"guid":     m.Data.GUID,
			"restored": m.Result.Restored,
		}).Info(m.Method.FullName())
		for _, w := range m.Result.Warnings {
			utils.Indent(log.Warn, 2)(w)
		}
		if !m.Result.Committed {
			log.Warn("Method left untouched (strict mode)")
		}

		if dot := viper.GetString("disass.dot"); dot != "" {
			out := os.Stdout
			if dot != "-" {
				f, err := os.Create(dot)
				if err != nil {
					return fmt.Errorf("failed to create DOT file: %w", err)
				}
				defer f.Close()
				out = f
			}
			if err := disass.DOT(out, m.Method); err != nil {
				return fmt.Errorf("failed to write control flow graph: %w", err)
			}
			if dot == "-" {
				return nil
			}
			log.Infof("Created %s", dot)
		}

		if viper.GetBool("disass.diff") {
			fmt.Print(disass.Diff(m.Method.FullName(), m.Stub, disass.Listing(m.Method, false), colors.Enabled()))
			return nil
		}
		fmt.Print(disass.Listing(m.Method, colors.Enabled()))
		return nil
	},
}
