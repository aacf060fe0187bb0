package interactive

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
)

// allLabel is the choice that selects every test set.
const allLabel = "all (every test set)"

// testSetChoices returns the prompt labels for the given set names and the
// selector each label maps to.
func testSetChoices(names []string, counts map[string]int) ([]string, map[string]string) {
	choices := make([]string, 0, len(names)+1)
	selectors := make(map[string]string, len(names)+1)

	for _, name := range names {
		label := fmt.Sprintf("%s (%d cases)", name, counts[name])
		choices = append(choices, label)
		selectors[label] = name
	}

	choices = append(choices, allLabel)
	selectors[allLabel] = "all"

	return choices, selectors
}

// SelectTestSet prompts for a test set, or every set, and returns the selector.
func SelectTestSet(names []string, counts map[string]int) (string, error) {
	choices, selectors := testSetChoices(names, counts)

	var selected string
	prompt := &survey.Select{
		Message: "Which test set should run?",
		Options: choices,
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", promptErr(err)
	}

	return selectors[selected], nil
}

// AskExecutable prompts for the path of the game executable.
func AskExecutable(defaultPath string) (string, error) {
	return askPath("Path to the headless game executable:", defaultPath, validateFile)
}

// AskRecordingsDir prompts for the directory holding the demo recordings.
func AskRecordingsDir(defaultPath string) (string, error) {
	return askPath("Recordings directory:", defaultPath, validateDir)
}

func askPath(message, defaultPath string, validate survey.Validator) (string, error) {
	var answer string
	prompt := &survey.Input{
		Message: message,
		Default: defaultPath,
	}

	if err := survey.AskOne(prompt, &answer, survey.WithValidator(survey.Required), survey.WithValidator(validate)); err != nil {
		return "", promptErr(err)
	}

	return answer, nil
}

func validateFile(ans interface{}) error {
	path, _ := ans.(string)

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path) //nolint:err113 // shown by the prompt
	}

	return nil
}

func validateDir(ans interface{}) error {
	path, _ := ans.(string)

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path) //nolint:err113 // shown by the prompt
	}

	return nil
}
