package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// promptWithRetry prompts the user for input and retries on invalid input
func promptWithRetry(reader *bufio.Reader, prompt string, validator func(string) (string, error)) (string, error) {
	for {
		fmt.Print(prompt)
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		result, err := validator(input)
		if err == nil {
			return result, nil
		}

		fmt.Printf("❌ %s\n\n", err.Error())
	}
}

// promptYesNo prompts for yes/no input with retry
func promptYesNo(reader *bufio.Reader, prompt string) (bool, error) {
	result, err := promptWithRetry(reader, prompt, func(input string) (string, error) {
		lower := strings.ToLower(input)
		if lower == "y" || lower == "yes" || lower == "n" || lower == "no" || lower == "" {
			return lower, nil
		}
		return "", fmt.Errorf("invalid input: %s (enter y/yes/n/no or press Enter for no)", input)
	})
	if err != nil {
		return false, err
	}

	return result == "y" || result == "yes", nil
}

// promptRequired prompts for required input with retry
func promptRequired(reader *bufio.Reader, prompt string) (string, error) {
	return promptWithRetry(reader, prompt, func(input string) (string, error) {
		if input == "" {
			return "", fmt.Errorf("this field is required")
		}
		return input, nil
	})
}

// promptOptional prompts for optional input with default value
func promptOptional(reader *bufio.Reader, prompt string, defaultValue string) (string, error) {
	return promptWithRetry(reader, prompt, func(input string) (string, error) {
		if input == "" {
			return defaultValue, nil
		}
		return input, nil
	})
}

// promptPort prompts for a TCP port with a default
func promptPort(reader *bufio.Reader, prompt string, defaultPort int) (int, error) {
	result, err := promptWithRetry(reader, prompt, func(input string) (string, error) {
		if input == "" {
			return strconv.Itoa(defaultPort), nil
		}
		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > 65535 {
			return "", fmt.Errorf("port must be an integer between 1 and 65535")
		}
		return input, nil
	})
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(result)
}

// validateCronExpression validates cron expression input
func validateCronExpression(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("cron expression is required")
	}

	parts := strings.Fields(input)
	if len(parts) != 5 {
		return "", fmt.Errorf("invalid cron expression: %s (must have 5 parts)", input)
	}

	return input, nil
}

// maskSensitiveData masks sensitive data for display
func maskSensitiveData(data string) string {
	if data == "" {
		return "(not set)"
	}
	if len(data) <= 8 {
		return "***"
	}
	return data[:2] + "..." + data[len(data)-2:]
}
