package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/inspectana/leadgen/internal/form"
	"github.com/inspectana/leadgen/internal/model"
)

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Submit an inspection request interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		pipeline, st, err := newPipeline(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		wizard := form.NewWizard(pipeline)
		return runWizard(cmd.Context(), os.Stdin, os.Stdout, wizard)
	},
}

var fieldPrompts = map[form.Field]string{
	form.FieldFullName:         "Full name",
	form.FieldEmail:            "Email",
	form.FieldPhone:            "Phone",
	form.FieldStreet:           "Street address",
	form.FieldCity:             "City",
	form.FieldState:            "State (two-letter code)",
	form.FieldZipCode:          "ZIP code",
	form.FieldInspectionType:   "Inspection type",
	form.FieldInsuranceCompany: "Insurance company",
	form.FieldPolicyNumber:     "Policy number (optional)",
	form.FieldAgencyName:       "Agency name",
	form.FieldAgentName:        "Agent name",
	form.FieldAgentPhone:       "Agent phone",
	form.FieldAgentEmail:       "Agent email",
}

var stepTitles = map[form.Step]string{
	form.StepIdentity:  "Contact & Property",
	form.StepSelection: "Inspection Type",
	form.StepInsurance: "Insurance & Agent",
}

// runWizard drives the three-step wizard over line-based input. It re-prompts
// a step until it validates, and retries submission on failure.
func runWizard(ctx context.Context, in io.Reader, out io.Writer, wizard *form.Wizard) error {
	scanner := bufio.NewScanner(in)

steps:
	for wizard.State() != form.StateSubmitted {
		step := wizard.Step()
		fmt.Fprintf(out, "\nStep %d of %d: %s\n", step, form.TotalSteps, stepTitles[step])
		if step > form.StepIdentity {
			fmt.Fprintln(out, "(type 'back' to return to the previous step)")
		}

		for _, f := range form.StepFields(step) {
			value, err := promptField(scanner, out, f)
			if err != nil {
				return err
			}
			if value == "back" && step > form.StepIdentity {
				wizard.Previous()
				continue steps
			}
			wizard.SetField(f, value)
		}

		if step == form.StepInsurance {
			if err := wizard.Submit(ctx); err != nil {
				fmt.Fprintf(out, "\nSubmission failed: %s\n", wizard.SubmitError())
				continue
			}
		} else {
			wizard.Next()
		}

		printErrors(out, step, wizard.Errors())
	}

	if rec := wizard.Record(); rec != nil {
		fmt.Fprintf(out, "\nInspection request submitted. Reference ID: %s\n", rec.ID)
	}
	return nil
}

func promptField(scanner *bufio.Scanner, out io.Writer, f form.Field) (string, error) {
	if f == form.FieldInspectionType {
		for i, t := range model.InspectionTypes {
			fmt.Fprintf(out, "  %d. %s\n", i+1, t)
		}
	}
	fmt.Fprintf(out, "%s: ", fieldPrompts[f])

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", eris.Wrap(err, "read input")
		}
		return "", eris.New("input closed before the form was complete")
	}
	value := strings.TrimSpace(scanner.Text())

	// Accept the option number as shorthand for the inspection type.
	if f == form.FieldInspectionType {
		if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= len(model.InspectionTypes) {
			value = string(model.InspectionTypes[n-1])
		}
	}
	return value, nil
}

func printErrors(out io.Writer, step form.Step, errs form.Errors) {
	for _, f := range form.StepFields(step) {
		if msg, ok := errs[f]; ok {
			fmt.Fprintf(out, "  ! %s\n", msg)
		}
	}
}

func init() {
	rootCmd.AddCommand(requestCmd)
}
