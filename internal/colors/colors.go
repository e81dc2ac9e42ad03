// Package colors provides the listing palette with TTY-aware defaults.
//
// Colors are automatically disabled when stdout is not a terminal (piped or
// redirected to a file). This behavior is provided by the underlying fatih/color
// library and respected by default. Use Init() to override based on CLI flags.
package colors

import "github.com/fatih/color"

// Init allows overriding the auto-detected color setting.
//   - forceColor == nil: keep auto-detected value
//   - forceColor == true: force colors on (--color)
//   - forceColor == false: force colors off
func Init(forceColor *bool) {
	if forceColor != nil {
		color.NoColor = !*forceColor
	}
}

// Enabled returns true if colors are currently enabled.
func Enabled() bool {
	return !color.NoColor
}

// New creates a color with custom attributes.
func New(attrs ...color.Attribute) *color.Color {
	return color.New(attrs...)
}

// -----------------------------------------------------------------------------
// Listing styles
// -----------------------------------------------------------------------------

// Label is used for IL_XXXX labels and offsets.
func Label() *color.Color { return color.New(color.Faint, color.FgHiBlue) }

// OpCode is used for instruction mnemonics.
func OpCode() *color.Color { return color.New(color.Bold, color.FgHiCyan) }

// Branch is used for mnemonics that transfer control.
func Branch() *color.Color { return color.New(color.Bold, color.FgHiMagenta) }

// Operand is used for resolved operands.
func Operand() *color.Color { return color.New(color.FgHiWhite) }

// Literal is used for strings and numeric constants.
func Literal() *color.Color { return color.New(color.FgHiYellow) }

// Type is used for type names in locals and signatures.
func Type() *color.Color { return color.New(color.FgHiGreen) }

// Comment is used for trailing annotations.
func Comment() *color.Color { return color.New(color.Italic, color.Faint, color.FgWhite) }

// Header is used for method and section headers.
func Header() *color.Color { return color.New(color.Bold, color.FgHiWhite) }

// -----------------------------------------------------------------------------
// Status styles
// -----------------------------------------------------------------------------

func Success() *color.Color { return color.New(color.Bold, color.FgHiGreen) }
func Warning() *color.Color { return color.New(color.Bold, color.FgHiYellow) }
func Failure() *color.Color { return color.New(color.Bold, color.FgHiRed) }

// Added and Removed color unified diff lines.
func Added() *color.Color   { return color.New(color.FgGreen) }
func Removed() *color.Color { return color.New(color.FgRed) }
