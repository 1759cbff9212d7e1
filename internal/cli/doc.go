/*
Package cli provides the command structure used by forcecheck.

A few policies apply to every command.

  - User-visible output goes to STDERR by default, through a configurable [Printer].
  - Flags are posix style with [pflag], and are NOT interspersed with arguments.
  - Every command gets '-h' and '--help' flags that print its usage.
  - Returning a [UsageError] from a command prints the error followed by the command's usage.

# Invocation

	CLI_NAME SUB-COMMAND [FLAGS...] [ARGS...]

Calling CLI_NAME with no arguments, or with one of the [HelpPatterns], prints usage for every command.

# Interactive input

[NewPrompter] reads prompted lines from a terminal with [term.Terminal] when one is attached, so line editing and history work as expected.
Otherwise, lines are scanned from the input as-is, which makes scripted sessions possible.

[pflag]: https://github.com/spf13/pflag
*/
package cli
