package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/jovinkassi/vaultask/internal/constants"
	"github.com/jovinkassi/vaultask/internal/models"
	"github.com/jovinkassi/vaultask/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrSignatureInvalid     = errors.New("signature verification failed")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// Credential is one set of login credentials. Both strategies resolve to a
// user record, creating one on first use (implicit registration).
type Credential interface {
	Verify(users repository.UserRepository) (*models.User, error)
}

// PasswordCredential authenticates an email and plaintext password.
type PasswordCredential struct {
	Email    string
	Password string
}

// Verify looks the user up by email and compares the bcrypt hash. An unknown
// email registers a new user and counts as a successful login. A user without
// a stored hash (wallet-only account) can never log in with a password.
func (c PasswordCredential) Verify(users repository.UserRepository) (*models.User, error) {
	user, err := users.FindByEmail(c.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return registerWithPassword(users, c.Email, c.Password)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(c.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func registerWithPassword(users repository.UserRepository, email, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), constants.BcryptCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        &email,
		PasswordHash: string(hashed),
	}
	if err := users.Create(user); err != nil {
		return nil, ErrFailedToCreateUser
	}

	return user, nil
}

// WalletCredential authenticates an Ethereum address via a signed message.
type WalletCredential struct {
	Address   string
	Signature string
	Message   string
}

// Verify recovers the signer address from the message signature and compares
// it case-insensitively to the claimed address. On match the user is looked
// up by wallet address, registering a new wallet-only user if absent. This
// path never touches password hashes.
func (c WalletCredential) Verify(users repository.UserRepository) (*models.User, error) {
	signer, err := recoverAddress(c.Message, c.Signature)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(signer, c.Address) {
		return nil, ErrSignatureInvalid
	}

	user, err := users.FindByWalletAddress(c.Address)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return registerWithWallet(users, c.Address)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

func registerWithWallet(users repository.UserRepository, address string) (*models.User, error) {
	user := &models.User{
		WalletAddress: &address,
	}
	if err := users.Create(user); err != nil {
		return nil, ErrFailedToCreateUser
	}

	return user, nil
}

// recoverAddress recovers the signer of an Ethereum personal-sign message.
// Wallets emit 65-byte signatures with the recovery id as 27 or 28.
func recoverAddress(message, signature string) (string, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return "", ErrSignatureInvalid
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig = append([]byte(nil), sig...)
		sig[crypto.RecoveryIDOffset] -= 27
	}

	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(message), message)
	hash := crypto.Keccak256([]byte(prefixed))

	pubKey, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return "", ErrSignatureInvalid
	}

	return crypto.PubkeyToAddress(*pubKey).Hex(), nil
}
