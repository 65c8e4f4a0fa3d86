package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hrimport/importer"
	"hrimport/storage"
)

var (
	deleteDBPath     string
	deleteNationalID string
	deleteEmployees  bool
)

var (
	deletePromptInput  io.Reader = os.Stdin
	deletePromptOutput io.Writer = os.Stdout
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete stored employees or the complete SQLite database file",
	Long: `Destructive database cleanup command.

Without further flags, the complete SQLite database file is deleted.
With --employee, only the employee with that national ID is removed.
With --all-employees, every stored employee is removed and the database file is kept.
Before deletion, an interactive security prompt requires typing exactly "Y".`,
	Example: `
  # Delete the complete SQLite file (requires interactive confirmation)
  hrimport delete --db ./hrimport.db

  # Delete one employee by national ID
  hrimport delete --employee 30111222

  # Remove all stored employees
  hrimport delete --all-employees
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		target := deleteTarget(deleteDBPath, deleteNationalID, deleteEmployees)
		confirmed, err := confirmDeletePrompt(deletePromptInput, deletePromptOutput, target)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("delete aborted: confirmation was not 'Y'")
		}

		if strings.TrimSpace(deleteNationalID) == "" && !deleteEmployees {
			if err := removeDatabaseFile(deleteDBPath); err != nil {
				return err
			}
			fmt.Printf("Deleted database file: %s\n", deleteDBPath)
			return nil
		}

		store, err := storage.OpenSQLite(deleteDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if deleteEmployees {
			removed, err := store.DeleteAllEmployees(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Deleted employees: %d\n", removed)
			return nil
		}

		if err := deleteEmployee(cmd.Context(), store, deleteNationalID); err != nil {
			return err
		}
		fmt.Printf("Deleted employee with national ID: %s\n", deleteNationalID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().StringVar(&deleteDBPath, "db", "./hrimport.db", "Path to local SQLite database")
	deleteCmd.Flags().StringVar(&deleteNationalID, "employee", "", "Delete only the employee with this national ID")
	deleteCmd.Flags().BoolVar(&deleteEmployees, "all-employees", false, "Delete all stored employees but keep the database file")
	deleteCmd.MarkFlagsMutuallyExclusive("employee", "all-employees")
}

func deleteTarget(dbPath, nationalID string, allEmployees bool) string {
	switch {
	case allEmployees:
		return "all employees in " + dbPath
	case strings.TrimSpace(nationalID) != "":
		return "employee " + strings.TrimSpace(nationalID) + " in " + dbPath
	default:
		return "database file " + dbPath
	}
}

func deleteEmployee(ctx context.Context, store *storage.SQLiteStore, nationalID string) error {
	record, err := store.GetEmployeeByNationalID(ctx, importer.NormalizeNationalID(nationalID))
	if err != nil {
		return err
	}
	deleted, err := store.DeleteEmployee(ctx, record.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s", storage.ErrEmployeeNotFound, nationalID)
	}
	return nil
}

func confirmDeletePrompt(input io.Reader, output io.Writer, target string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("delete confirmation input is not available")
	}

	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "Delete %s? Type Y to confirm: ", target); err != nil {
		return false, fmt.Errorf("write delete confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimSpace(line)
			return line == "Y", nil
		}
		return false, fmt.Errorf("read delete confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}

func removeDatabaseFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database file not found: %s", path)
		}
		return fmt.Errorf("stat database file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("database path is a directory: %s", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete database file: %w", err)
	}
	return nil
}
