package support

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MeKo-Tech/folio/cmd/folio/cmd"
	"github.com/MeKo-Tech/folio/internal/geometry"
	"github.com/MeKo-Tech/folio/internal/testutil"
	"github.com/cucumber/godog"
)

// RegisterSteps registers all step definitions for the CLI suite.
func (testCtx *TestContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I have a candidates file with (\d+) sequential pages$`, testCtx.iHaveACandidatesFile)
	sc.Step(`^I have a detections file with (\d+) sequential pages$`, testCtx.iHaveADetectionsFile)
	sc.Step(`^I have a detections file with (\d+) pages shifted by (\d+)$`, testCtx.iHaveAShiftedDetectionsFile)
	sc.Step(`^I run folio (\w+) with format "([^"]*)"$`, testCtx.iRunFolioWithFormat)
	sc.Step(`^I run folio (\w+) with format "([^"]*)" and total pages (\d+)$`, testCtx.iRunFolioWithTotalPages)
	sc.Step(`^the command should succeed$`, testCtx.theCommandShouldSucceed)
	sc.Step(`^the command should fail$`, testCtx.theCommandShouldFail)
	sc.Step(`^the output should contain "([^"]*)"$`, testCtx.theOutputShouldContain)
	sc.Step(`^the output should be valid JSON$`, testCtx.theOutputShouldBeValidJSON)
}

func (testCtx *TestContext) iHaveACandidatesFile(pages int) error {
	region := geometry.NewRectangle(0, 2600, 1000, 300)
	content, err := testutil.CandidatesFileContent(testutil.SequentialBook(pages), region)
	if err != nil {
		return err
	}
	return testCtx.writeInputFile("candidates.json", content)
}

func (testCtx *TestContext) iHaveADetectionsFile(pages int) error {
	content, err := testutil.DetectionsFileContent(testutil.SequentialDetections(pages))
	if err != nil {
		return err
	}
	return testCtx.writeInputFile("detections.json", content)
}

func (testCtx *TestContext) iHaveAShiftedDetectionsFile(pages, shift int) error {
	content, err := testutil.DetectionsFileContent(testutil.ShiftedDetections(pages, shift))
	if err != nil {
		return err
	}
	return testCtx.writeInputFile("detections.json", content)
}

func (testCtx *TestContext) writeInputFile(name, content string) error {
	path := filepath.Join(testCtx.TempDir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	testCtx.CreatedFiles = append(testCtx.CreatedFiles, path)
	return nil
}

func (testCtx *TestContext) inputFileFor(verb string) string {
	if verb == "analyze" || verb == "inspect" {
		return filepath.Join(testCtx.TempDir, "detections.json")
	}
	return filepath.Join(testCtx.TempDir, "candidates.json")
}

func (testCtx *TestContext) iRunFolioWithFormat(verb, format string) error {
	return testCtx.runCommand(verb, testCtx.inputFileFor(verb), "--format", format)
}

func (testCtx *TestContext) iRunFolioWithTotalPages(verb, format string, totalPages int) error {
	return testCtx.runCommand(verb, testCtx.inputFileFor(verb),
		"--format", format, "--total-pages", fmt.Sprintf("%d", totalPages))
}

// runCommand executes the CLI in-process and captures its output.
func (testCtx *TestContext) runCommand(args ...string) error {
	rootCmd := cmd.GetRootCommand()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	testCtx.LastCommand = "folio " + strings.Join(args, " ")
	testCtx.LastError = rootCmd.Execute()
	testCtx.LastOutput = buf.String()
	return nil
}

func (testCtx *TestContext) theCommandShouldSucceed() error {
	if testCtx.LastError != nil {
		return fmt.Errorf("command %q failed: %w\noutput: %s", testCtx.LastCommand, testCtx.LastError, testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theCommandShouldFail() error {
	if testCtx.LastError == nil {
		return fmt.Errorf("command %q succeeded, expected failure", testCtx.LastCommand)
	}
	return nil
}

func (testCtx *TestContext) theOutputShouldContain(expected string) error {
	if !strings.Contains(testCtx.LastOutput, expected) {
		return fmt.Errorf("output does not contain %q:\n%s", expected, testCtx.LastOutput)
	}
	return nil
}

func (testCtx *TestContext) theOutputShouldBeValidJSON() error {
	var decoded any
	if err := json.Unmarshal([]byte(testCtx.LastOutput), &decoded); err != nil {
		return fmt.Errorf("output is not valid JSON: %w\n%s", err, testCtx.LastOutput)
	}
	return nil
}
