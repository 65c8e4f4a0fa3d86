package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hrimport/config"
	"hrimport/importer"
)

var (
	mapInput    string
	mapFormat   string
	mapStrategy string
	mapFrom     string
	mapSave     string
	mapAccept   bool
)

var (
	mapPromptInput  io.Reader = os.Stdin
	mapPromptOutput io.Writer = os.Stdout
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Bind roster columns to employee fields and save the mapping",
	Long: `Open a roster, suggest a column for every employee field from the header aliases and let you
confirm or change each binding. The result is saved as YAML for "hrimport import --mapping".

For every field, enter a column number, "-" to leave the field unbound, or press Enter to keep
the suggestion. The mapping is only saved when every required field is bound.`,
	Example: `
  # Map a workbook interactively
  hrimport map -i Nomina2026.xlsx --save ./nomina.mapping.yaml

  # Start from an existing mapping
  hrimport map -i Nomina2026.xlsx --from ./nomina.mapping.yaml --save ./nomina.mapping.yaml

  # Save the suggested bindings without prompting
  hrimport map -i Nomina2026.xlsx --yes
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		strategy, err := resolveStrategy(mapStrategy, *cfg)
		if err != nil {
			return err
		}

		im := newImporter(*cfg, nil, commandLogger(cmd))
		sheet, err := im.Read(importer.Source{Path: mapInput, Format: mapFormat, Strategy: strategy})
		if err != nil {
			return err
		}

		mapper := importer.NewColumnMapper(im.Catalog, sheet)
		if strings.TrimSpace(mapFrom) != "" {
			existing, err := importer.LoadMapping(mapFrom)
			if err != nil {
				return err
			}
			existing.Apply(mapper)
		}
		mapper.Suggest()

		if !mapAccept {
			if err := promptBindings(mapPromptInput, mapPromptOutput, mapper); err != nil {
				return err
			}
		}

		if _, err := mapper.Confirm(); err != nil {
			return err
		}

		target := mapSave
		if strings.TrimSpace(target) == "" {
			target = defaultMappingPath(mapInput)
		}
		if err := importer.SaveMapping(target, importer.NewMappingFile(filepath.Base(mapInput), mapper)); err != nil {
			return err
		}
		fmt.Printf("Mapping saved: %s (%d fields bound)\n", target, len(mapper.Bindings()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mapCmd)

	mapCmd.Flags().StringVarP(&mapInput, "input", "i", "", "Input file path")
	mapCmd.Flags().StringVarP(&mapFormat, "format", "f", "", "Input format: csv|excel|xls|text (optional, inferred from extension when omitted)")
	mapCmd.Flags().StringVarP(&mapStrategy, "strategy", "s", "", "Import strategy: structured|legacy (default from config)")
	mapCmd.Flags().StringVar(&mapFrom, "from", "", "Existing mapping file to start from")
	mapCmd.Flags().StringVar(&mapSave, "save", "", "Output mapping file (default: <input>.mapping.yaml)")
	mapCmd.Flags().BoolVarP(&mapAccept, "yes", "y", false, "Accept suggested bindings without prompting")

	_ = mapCmd.MarkFlagRequired("input")
}

func defaultMappingPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".mapping.yaml"
}

// promptBindings walks the catalog once and lets the operator confirm or
// change each binding.
func promptBindings(input io.Reader, output io.Writer, mapper *importer.ColumnMapper) error {
	if input == nil {
		return fmt.Errorf("mapping input is not available")
	}
	if output == nil {
		output = io.Discard
	}

	fmt.Fprintln(output, "Columns:")
	for column, header := range mapper.Headers() {
		fmt.Fprintf(output, "  [%d] %s: %s\n", column, header, mapper.PreviewValue(column, 0))
	}
	fmt.Fprintln(output)

	reader := bufio.NewReader(input)
	for _, field := range mapper.Catalog() {
		current := "unbound"
		if column, ok := mapper.Binding(field.Key); ok {
			current = fmt.Sprintf("%d (%s)", column, mapper.PreviewValue(column, 0))
		}
		marker := ""
		if field.Required {
			marker = " *"
		}

		for {
			if _, err := fmt.Fprintf(output, "%s%s [%s]: ", field.Label, marker, current); err != nil {
				return fmt.Errorf("write mapping prompt: %w", err)
			}

			line, err := reader.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("read mapping answer: %w", err)
			}
			answer := strings.TrimSpace(line)

			retry, applyErr := applyAnswer(mapper, field.Key, answer, len(mapper.Headers()))
			if applyErr != nil {
				fmt.Fprintln(output, applyErr.Error())
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			if !retry {
				break
			}
		}
	}

	if missing := mapper.Missing(); len(missing) > 0 {
		labels := make([]string, 0, len(missing))
		for _, field := range missing {
			labels = append(labels, field.Label)
		}
		fmt.Fprintf(output, "Required fields still unbound: %s\n", strings.Join(labels, ", "))
	}
	return nil
}

// applyAnswer applies one prompt answer. It reports retry when the answer was
// rejected and the same field should be asked again.
func applyAnswer(mapper *importer.ColumnMapper, fieldKey, answer string, columns int) (bool, error) {
	switch answer {
	case "":
		return false, nil
	case "-":
		mapper.SetBinding(fieldKey, importer.Unmapped)
		return false, nil
	}

	column, err := strconv.Atoi(answer)
	if err != nil || column < 0 || column >= columns {
		return true, fmt.Errorf("enter a column number between 0 and %d, \"-\" or Enter", columns-1)
	}
	mapper.SetBinding(fieldKey, column)
	return false, nil
}
