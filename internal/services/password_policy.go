package services

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	passwordMinLength = 8
	passwordMaxLength = 128

	// Strength buckets reported by ScorePassword.
	StrengthWeak       = "weak"
	StrengthFair       = "fair"
	StrengthGood       = "good"
	StrengthStrong     = "strong"
	StrengthVeryStrong = "very-strong"
)

const passwordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

var passwordDisallowedChars = []rune{'<', '>', '"', '\'', '&'}

// PasswordDenylist holds lowercased passwords that are rejected outright.
// A nil denylist falls back to the built-in default.
type PasswordDenylist map[string]bool

// Contains matches the whole password case-insensitively.
func (denylist PasswordDenylist) Contains(password string) bool {
	if denylist == nil {
		denylist = defaultPasswordDenylist
	}
	return denylist[strings.ToLower(password)]
}

// NewPasswordDenylist builds a denylist from entries, lowercasing each and
// skipping blanks.
func NewPasswordDenylist(entries []string) PasswordDenylist {
	denylist := make(PasswordDenylist, len(entries))
	for _, entry := range entries {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry != "" {
			denylist[entry] = true
		}
	}
	return denylist
}

// LoadPasswordDenylist reads one entry per line. Blank lines and lines
// starting with # are skipped.
func LoadPasswordDenylist(reader io.Reader) (PasswordDenylist, error) {
	denylist := make(PasswordDenylist)
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		denylist[strings.ToLower(line)] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read denylist: %w", err)
	}
	return denylist, nil
}

// LoadPasswordDenylistFile reads a denylist file from disk.
func LoadPasswordDenylistFile(path string) (PasswordDenylist, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open denylist: %w", err)
	}
	defer file.Close()
	return LoadPasswordDenylist(file)
}

var defaultPasswordDenylist = NewPasswordDenylist([]string{
	"password", "123456", "123456789", "qwerty",
	"abc123", "password123", "admin", "letmein",
	"welcome", "monkey", "dragon", "master",
	"hello", "freedom", "whatever", "qazwsx",
	"trustno1", "jordan", "harley", "rangers",
	"iwantu", "gandalf", "starwars", "silver",
	"richard", "qwe123", "matt", "runner",
	"michael", "charlie", "andrew", "martin",
	"christopher", "jessica", "michelle", "matthew",
	"joshua", "daniel", "anthony", "kevin",
	"jason", "mark", "paul", "donald",
	"george", "ronald", "kenneth", "gary",
	"timothy", "jose", "larry", "jeffrey",
	"frank", "scott", "eric", "stephen",
	"raymond", "gregory", "jerry", "dennis",
	"walter", "peter", "harold", "douglas",
	"henry", "carl", "arthur", "ryan",
	"roger",
})

// PasswordValidationResult reports both hard policy violations and advisory
// warnings. Strength is computed independently of validity.
type PasswordValidationResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Strength string   `json:"strength"`
}

// ValidatePassword checks a candidate password against the policy with the
// default denylist. It is a pure function of the input string.
func ValidatePassword(password string) PasswordValidationResult {
	return ValidatePasswordWith(password, nil)
}

// ValidatePasswordWith checks the password against the policy using the given
// denylist. A nil denylist means the built-in default.
func ValidatePasswordWith(password string, denylist PasswordDenylist) PasswordValidationResult {
	errs := []string{}
	warnings := []string{}

	if len(password) < passwordMinLength {
		errs = append(errs, fmt.Sprintf("Password must be at least %d characters long", passwordMinLength))
	}
	if len(password) > passwordMaxLength {
		errs = append(errs, fmt.Sprintf("Password must be no more than %d characters long", passwordMaxLength))
	}
	if !containsClass(password, isUpper) {
		errs = append(errs, "Password must contain at least one uppercase letter")
	}
	if !containsClass(password, isLower) {
		errs = append(errs, "Password must contain at least one lowercase letter")
	}
	if !containsClass(password, isDigit) {
		errs = append(errs, "Password must contain at least one number")
	}
	if !containsClass(password, isSymbol) {
		errs = append(errs, "Password must contain at least one special character (!@#$%^&*()_+-=[]{}|;:,.<>?)")
	}

	disallowedFound := make([]string, 0, len(passwordDisallowedChars))
	for _, char := range passwordDisallowedChars {
		if strings.ContainsRune(password, char) {
			disallowedFound = append(disallowedFound, string(char))
		}
	}
	if len(disallowedFound) > 0 {
		errs = append(errs, "Password cannot contain: "+strings.Join(disallowedFound, ", "))
	}

	if denylist.Contains(password) {
		errs = append(errs, "Password is too common. Please choose a more unique password")
	}

	if len(password) < 12 {
		warnings = append(warnings, "Consider using a longer password for better security")
	}
	if countClass(password, isSymbol) < 2 {
		warnings = append(warnings, "Consider using multiple special characters for better security")
	}
	if hasRepeatedRun(password, 3) {
		warnings = append(warnings, `Avoid repeated characters (e.g., "aaa", "111")`)
	}
	if hasAscendingRun(password, 3) {
		warnings = append(warnings, `Avoid sequential characters (e.g., "abc", "123")`)
	}

	return PasswordValidationResult{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
		Strength: ScorePasswordWith(password, denylist),
	}
}

// ScorePassword maps a password onto a strength bucket using the default
// denylist. The score is additive over length thresholds and character
// classes, with bonuses for mixing and penalties for denylist hits, repeated
// runs, and ascending sequences.
func ScorePassword(password string) string {
	return ScorePasswordWith(password, nil)
}

func ScorePasswordWith(password string, denylist PasswordDenylist) string {
	score := 0

	if len(password) >= 8 {
		score++
	}
	if len(password) >= 12 {
		score++
	}
	if len(password) >= 16 {
		score++
	}

	hasLower := containsClass(password, isLower)
	hasUpper := containsClass(password, isUpper)
	hasDigit := containsClass(password, isDigit)
	if hasLower {
		score++
	}
	if hasUpper {
		score++
	}
	if hasDigit {
		score++
	}
	if containsClass(password, isSymbol) {
		score++
	}

	if hasLower && hasUpper {
		score++
	}
	if hasDigit && (hasLower || hasUpper) {
		score++
	}

	if denylist.Contains(password) {
		score -= 2
	}
	if hasRepeatedRun(password, 3) {
		score--
	}
	if hasAscendingRun(password, 3) {
		score--
	}

	switch {
	case score <= 2:
		return StrengthWeak
	case score <= 4:
		return StrengthFair
	case score <= 6:
		return StrengthGood
	case score <= 8:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}

// PasswordRequirements returns the human-readable policy for display.
func PasswordRequirements() []string {
	return []string{
		fmt.Sprintf("At least %d characters long", passwordMinLength),
		"At least one uppercase letter (A-Z)",
		"At least one lowercase letter (a-z)",
		"At least one number (0-9)",
		"At least one special character (!@#$%^&*()_+-=[]{}|;:,.<>?)",
		`Cannot contain: < > " ' &`,
	}
}

func isUpper(char rune) bool { return char >= 'A' && char <= 'Z' }
func isLower(char rune) bool { return char >= 'a' && char <= 'z' }
func isDigit(char rune) bool { return char >= '0' && char <= '9' }

func isSymbol(char rune) bool {
	return strings.ContainsRune(passwordSymbols, char)
}

func containsClass(value string, match func(rune) bool) bool {
	for _, char := range value {
		if match(char) {
			return true
		}
	}
	return false
}

func countClass(value string, match func(rune) bool) int {
	count := 0
	for _, char := range value {
		if match(char) {
			count++
		}
	}
	return count
}

// hasRepeatedRun reports whether any character repeats n or more times in a
// row.
func hasRepeatedRun(value string, n int) bool {
	runes := []rune(value)
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

// hasAscendingRun reports whether the password contains n consecutive
// ascending letters or digits, case-insensitively. The 9-to-0 step only
// closes a run already in progress, so "890" counts but "901" does not.
func hasAscendingRun(value string, n int) bool {
	lowered := []rune(strings.ToLower(value))
	run := 1
	for i := 1; i < len(lowered); i++ {
		prev, cur := lowered[i-1], lowered[i]
		ascending := (isLower(prev) && isLower(cur) && cur == prev+1) ||
			(isDigit(prev) && isDigit(cur) && (cur == prev+1 || (prev == '9' && cur == '0' && run >= 2)))
		if ascending {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}
