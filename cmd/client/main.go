// Command client is an interactive console demo that drives the full
// login flow against a running identity service: register a throwaway
// account, log in for a token, then call the greeting endpoint with it.
package main

import (
	"bufio"
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	StatusCode int             `json:"statusCode"`
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		if err := runGreetingFlow(baseURL); err != nil {
			fmt.Println("flow failed:", err)
		}

		fmt.Print("\nRun again? [Y/q] ")
		line, err := reader.ReadString('\n')
		if err != nil || strings.TrimSpace(strings.ToLower(line)) == "q" {
			fmt.Println("bye")
			return
		}
	}
}

func runGreetingFlow(baseURL string) error {
	email, password := randomCredentials()
	name := strings.SplitN(email, "@", 2)[0]
	fmt.Printf("\nusing credentials %s / %s\n", email, password)

	// 1. Register
	env, err := post(baseURL+"/api/users/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	fmt.Println("registered:", env.Message)

	// 2. Login
	env, err = post(baseURL+"/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	var loginData struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &loginData); err != nil {
		return fmt.Errorf("login: decode token: %w", err)
	}
	fmt.Println("token obtained")

	// 3. Greeting
	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/greeting?name="+name, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+loginData.Token)

	env, err = do(req)
	if err != nil {
		return fmt.Errorf("greeting: %w", err)
	}
	var greetingData struct {
		Greeting string `json:"greeting"`
	}
	if err := json.Unmarshal(env.Data, &greetingData); err != nil {
		return err
	}
	fmt.Println("server says:", greetingData.Greeting)
	return nil
}

func randomCredentials() (email, password string) {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	suffix := hex.EncodeToString(buf)
	return fmt.Sprintf("user_%s@example.com", suffix), fmt.Sprintf("Pass_%s1", suffix)
}

func post(url string, payload map[string]string) (*envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return do(req)
}

func do(req *http.Request) (*envelope, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return &env, fmt.Errorf("status %d: %s", resp.StatusCode, env.Message)
	}
	return &env, nil
}
