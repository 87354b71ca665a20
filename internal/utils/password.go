package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt 加密，明文超过 72 字节的部分会被忽略
func HashPassword(password string) (string, error) {
	p, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(p), err
}

// CheckPassword 校验明文与密文是否匹配
func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
