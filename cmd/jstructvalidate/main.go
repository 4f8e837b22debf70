// Package main is the CLI entry point for jstructvalidate, a thin
// wrapper over the jsonstructure package's two validators: one root
// cobra.Command with SilenceErrors/SilenceUsage, subcommands doing the
// actual file IO and handing parsed bytes to the library.
package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/json-structure/core"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	allowDollar bool
	allowImport bool
	extended    bool
	importMap   string
}

func newRootCommand() *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:           "jstructvalidate",
		Short:         "Validate JSON Structure schema and instance documents",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().BoolVar(&flags.allowDollar, "allow-dollar", false,
		"admit '$' in the identifier pattern (for validating meta-schemas themselves)")
	root.PersistentFlags().BoolVar(&flags.allowImport, "allow-import", false,
		"enable $import/$importdefs expansion")
	root.PersistentFlags().BoolVar(&flags.extended, "extended", false,
		"enable conditional-composition and validation-addin keyword processing")
	root.PersistentFlags().StringVar(&flags.importMap, "import-map", "",
		"YAML file mapping absolute import URIs to local file paths")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the schema or instance validator",
	}
	validateCmd.AddCommand(newValidateSchemaCommand(flags))
	validateCmd.AddCommand(newValidateInstanceCommand(flags))
	root.AddCommand(validateCmd)

	return root
}

func newValidateSchemaCommand(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <file>",
		Short: "Validate a schema document against the Meta-Schema Validator",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			opts, err := buildOptions(flags)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %q: %w", args[0], err)
			}
			v := jsonstructure.NewValidator(opts)
			diags := v.ValidateSchemaDocument(data)
			return report(diags)
		},
	}
}

func newValidateInstanceCommand(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "instance <schema-file> <instance-file>",
		Short: "Validate an instance document against a schema",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			opts, err := buildOptions(flags)
			if err != nil {
				return err
			}
			schemaData, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %q: %w", args[0], err)
			}
			instanceData, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading %q: %w", args[1], err)
			}
			v := jsonstructure.NewValidator(opts)
			diags := v.ValidateInstanceDocument(schemaData, instanceData)
			return report(diags)
		},
	}
}

func buildOptions(flags *cliFlags) (jsonstructure.Options, error) {
	opts := jsonstructure.Options{
		AllowDollar: flags.allowDollar,
		AllowImport: flags.allowImport,
		Extended:    flags.extended,
	}
	if flags.importMap == "" {
		return opts, nil
	}
	importMap, err := loadImportMap(flags.importMap)
	if err != nil {
		return opts, err
	}
	opts.ImportMap = importMap
	opts.Resolver = jsonstructure.FileResolver{ImportMap: importMap}
	return opts, nil
}

// report prints every diagnostic to stdout, one per line, and returns a non-nil error
// (triggering a non-zero exit) when any were found.
func report(diags *jsonstructure.DiagnosticList) error {
	lines := diags.Strings()
	if len(lines) == 0 {
		fmt.Println("ok")
		return nil
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return fmt.Errorf("%d diagnostic(s) found", len(lines))
}

// loadImportMap reads a YAML file of absolute-URI -> local-file-path
// entries, used to build the default FileResolver.
func loadImportMap(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import map %q: %w", path, err)
	}
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing import map %q: %w", path, err)
	}
	return m, nil
}
