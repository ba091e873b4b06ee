package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shulebooks/shulebooks/internal/model"
)

func newStudentCommand(booksDir *string) *cobra.Command {
	studentCmd := &cobra.Command{
		Use:   "student",
		Short: "Enrollment register",
	}
	studentCmd.AddCommand(newStudentEnrollCommand(booksDir))
	studentCmd.AddCommand(newStudentListCommand(booksDir))
	return studentCmd
}

func newStudentEnrollCommand(booksDir *string) *cobra.Command {
	var name, nemis, grade, guardian, contact string

	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Enroll a student",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()

			st, err := b.students.Enroll(cmd.Context(), model.Student{
				Name:     name,
				NEMIS:    nemis,
				Grade:    grade,
				Guardian: guardian,
				Contact:  contact,
			})
			if err != nil {
				return err
			}

			b.audit("enroll", fmt.Sprintf("%s (NEMIS %s, %s)", st.Name, st.NEMIS, st.Grade), 0, "")
			fmt.Printf("Enrolled %s (NEMIS %s) in %s\n", st.Name, st.NEMIS, st.Grade)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "student name (required)")
	cmd.Flags().StringVar(&nemis, "nemis", "", "NEMIS number (required)")
	cmd.Flags().StringVar(&grade, "grade", "", "grade, e.g. \"Grade 4\" (required)")
	cmd.Flags().StringVar(&guardian, "guardian", "", "guardian name")
	cmd.Flags().StringVar(&contact, "contact", "", "guardian phone")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("nemis")
	_ = cmd.MarkFlagRequired("grade")

	return cmd
}

func newStudentListCommand(booksDir *string) *cobra.Command {
	var grade string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List enrolled students",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(*booksDir)
			if err != nil {
				return err
			}
			defer b.close()

			var list []model.Student
			if grade != "" {
				list, err = b.students.ByGrade(cmd.Context(), grade)
			} else {
				list, err = b.students.List(cmd.Context())
			}
			if err != nil {
				return err
			}

			fmt.Printf("%-12s %-28s %-10s %s\n", "NEMIS", "NAME", "GRADE", "GUARDIAN")
			for _, st := range list {
				fmt.Printf("%-12s %-28s %-10s %s\n", st.NEMIS, st.Name, st.Grade, st.Guardian)
			}
			fmt.Printf("%d students\n", len(list))
			return nil
		},
	}

	cmd.Flags().StringVar(&grade, "grade", "", "only one grade")

	return cmd
}
