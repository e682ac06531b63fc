package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dynatype/disinherit"
)

var getCmd = &cobra.Command{
	Use:   "get MODULE::TYPE MEMBER [ARG...]",
	Short: "Retrieve a member through the retrieval hook",
	Long: `Mint a fresh instance of the type and retrieve the named member
through the type's retrieval hook. A hidden member fails the same way a
missing one does. With --call the member is invoked; extra arguments
are passed to the call as strings.`,
	Example: `  disinherit get -p ./schemas app::Panel title
  disinherit get -p ./schemas app::Panel render --call
  disinherit get -p ./schemas app::Panel helper      # fails: hidden`,
	Args: cobra.MinimumNArgs(2),
	RunE: runGet,
}

var getCall bool

func init() {
	getCmd.Flags().BoolVar(&getCall, "call", false, "invoke the member and print its result")
}

func runGet(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	typ, err := resolveTypeArg(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	member := args[1]
	in := typ.New()

	if getCall {
		callArgs := make([]disinherit.Value, 0, len(args[2:]))
		for _, a := range args[2:] {
			callArgs = append(callArgs, a)
		}
		result, err := in.Call(member, callArgs...)
		if err != nil {
			return err
		}
		return printValue(member, "result", result)
	}

	v, err := in.Attr(member)
	if err != nil {
		return err
	}
	return printValue(member, memberKind(v), v)
}

func printValue(name, kind string, v disinherit.Value) error {
	if flagFormat == "json" {
		return writeJSON(MemberJSON{Name: name, Kind: kind, Value: disinherit.DescribeValue(v)})
	}
	fmt.Println(disinherit.DescribeValue(v))
	return nil
}
