package security

import "golang.org/x/crypto/bcrypt"

// HashPassword : bcrypt-хэш пароля. Соль генерируется на каждый вызов
// и зашита в результат, поэтому два хэша одного пароля различаются.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword : сравнение за константное время.
// На битый или чужой формат хэша возвращает false, а не ошибку.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
