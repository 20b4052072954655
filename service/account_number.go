package service

import (
	"bank-office-api/model"
	"bank-office-api/repository"
	"errors"
	"fmt"
	"math/rand"
)

const (
	checkingAccountPrefix = "33"
	savingsAccountPrefix  = "53"

	accountNumberSuffixLength = 8

	// maxGenerationAttempts bounds the uniqueness retry loop. With an eight
	// digit suffix space a collision streak this long means the number space
	// is effectively exhausted.
	maxGenerationAttempts = 100
)

var ErrAccountNumberExhausted = errors.New("could not generate a unique account number")

// AccountNumberGenerator produces unique account numbers with a
// type-dependent prefix followed by a random numeric suffix.
type AccountNumberGenerator struct {
	repo repository.IAccountRepository
}

func NewAccountNumberGenerator(repo repository.IAccountRepository) *AccountNumberGenerator {
	return &AccountNumberGenerator{repo: repo}
}

// Generate returns a fresh account number that does not yet exist in the
// store. It retries on collision up to maxGenerationAttempts.
func (g *AccountNumberGenerator) Generate(accountType model.AccountType) (string, error) {
	prefix := savingsAccountPrefix
	if accountType == model.AccountTypeChecking {
		prefix = checkingAccountPrefix
	}

	for attempt := 0; attempt < maxGenerationAttempts; attempt++ {
		number := prefix + randomDigits(accountNumberSuffixLength)
		exists, err := g.repo.ExistsByAccountNumber(number)
		if err != nil {
			return "", fmt.Errorf("could not check account number uniqueness: %w", err)
		}
		if !exists {
			return number, nil
		}
	}

	return "", ErrAccountNumberExhausted
}

func randomDigits(length int) string {
	digits := make([]byte, length)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return string(digits)
}
