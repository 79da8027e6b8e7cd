//go:build ignore

// generate_keys prints fresh secrets for the cargo quote service as .env
// lines: the two JWT secrets, API keys and, for each -operator, an
// OPERATORS entry with a bcrypt password hash.
//
//	go run scripts/generate_keys.go -api-keys 2 -operator anna:s3cret:admin -operator ivan:pa55word:viewer
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type operatorFlags []string

func (o *operatorFlags) String() string { return strings.Join(*o, ",") }

func (o *operatorFlags) Set(v string) error {
	*o = append(*o, v)
	return nil
}

func randomSecret(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		fail("read random bytes: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

func operatorEntry(spec string, cost int) (string, error) {
	name, rest, ok := strings.Cut(spec, ":")
	password, role, ok2 := strings.Cut(rest, ":")
	if !ok || !ok2 || name == "" || password == "" {
		return "", fmt.Errorf("operator %q must be name:password:role", spec)
	}
	role = strings.ToLower(role)
	if role != "admin" && role != "viewer" {
		return "", fmt.Errorf("operator %q: role must be admin or viewer", name)
	}
	if strings.ContainsAny(name, ":,") {
		return "", fmt.Errorf("operator %q: name must not contain ':' or ','", name)
	}
	if len(password) < 6 {
		return "", fmt.Errorf("operator %q: password must be at least 6 characters", name)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password of %q: %w", name, err)
	}
	return name + ":" + string(hash) + ":" + role, nil
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	var operators operatorFlags
	apiKeys := flag.Int("api-keys", 1, "number of API keys to generate")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost for operator passwords")
	flag.Var(&operators, "operator", "name:password:role, repeatable")
	flag.Parse()

	entries := make([]string, 0, len(operators))
	for _, spec := range operators {
		entry, err := operatorEntry(spec, *cost)
		if err != nil {
			fail("%v", err)
		}
		entries = append(entries, entry)
	}

	fmt.Println("# JWT")
	fmt.Printf("JWT_SECRET_KEY=%s\n", randomSecret(32))
	fmt.Printf("JWT_REFRESH_SECRET_KEY=%s\n", randomSecret(32))

	if *apiKeys > 0 {
		keys := make([]string, *apiKeys)
		for i := range keys {
			keys[i] = randomSecret(24)
		}
		fmt.Println("\n# Quote clients")
		fmt.Printf("API_KEYS=%s\n", strings.Join(keys, ","))
	}

	if len(entries) > 0 {
		fmt.Println("\n# Operators")
		fmt.Printf("OPERATORS=%s\n", strings.Join(entries, ","))
	}
}
