package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var apiURL = envOr("API_URL", "http://localhost:8080")
var recipient = envOr("SMOKE_RECIPIENT", "")
var send, _ = strconv.ParseBool(os.Getenv("SMOKE_SEND"))

const (
	workers  = 4
	duration = 10 * time.Second
)

var (
	names       = []string{"Adebayo Ola", "José Ñúñez", "Chiamaka Obi", "Zoë Adeyemi"}
	statuses    = []string{"successful", "pending", "failed", "success"}
	dueTypes    = []string{"college", "department", "hostel", "sug"}
	methods     = []string{"bank_transfer", "card"}
	departments = []string{"CSC", "MTS", "PHY", "STS"}
)

type Transaction struct {
	Reference     string    `json:"reference"`
	Status        string    `json:"status"`
	FullName      string    `json:"fullName"`
	Email         string    `json:"email"`
	MatricNumber  string    `json:"matricNumber"`
	College       string    `json:"college"`
	Department    string    `json:"department"`
	Level         string    `json:"level"`
	Amount        *int      `json:"amount,omitempty"`
	DueType       string    `json:"dueType"`
	PaymentMethod string    `json:"paymentMethod"`
	Hostel        string    `json:"hostel,omitempty"`
	RoomNumber    string    `json:"roomNumber,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func main() {
	if send && recipient == "" {
		fmt.Println("SMOKE_SEND=true needs SMOKE_RECIPIENT")
		os.Exit(1)
	}

	endpoint := apiURL + "/api/v1/receipts/preview"
	if send {
		endpoint = apiURL + "/api/send-receipt"
	}

	var ok, failed int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			start := time.Now()
			for time.Since(start) < duration {
				if err := post(endpoint, createTransaction()); err != nil {
					atomic.AddInt64(&failed, 1)
					fmt.Println("request failed:", err)
				} else {
					atomic.AddInt64(&ok, 1)
				}
				if send {
					// one email per worker is plenty
					return
				}
				time.Sleep(time.Duration(rand.Intn(500)) * time.Millisecond)
			}
		}()
	}

	wg.Wait()
	fmt.Printf("done: %d ok, %d failed\n", ok, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func post(endpoint string, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return err
	}

	resp, err := http.Post(endpoint, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d: %s", tx.Reference, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/pdf") {
		fmt.Printf("%s: %d byte receipt\n", tx.Reference, len(body))
	} else {
		fmt.Printf("%s: %s\n", tx.Reference, strings.TrimSpace(string(body)))
	}
	return nil
}

func createTransaction() Transaction {
	tx := Transaction{
		Reference:     "SMOKE-" + strings.ToUpper(uuid.New().String()),
		Status:        statuses[rand.Intn(len(statuses))],
		FullName:      names[rand.Intn(len(names))],
		Email:         recipient,
		MatricNumber:  fmt.Sprintf("2023%04d", rand.Intn(10000)),
		College:       "COLPHYS",
		Department:    departments[rand.Intn(len(departments))],
		Level:         strconv.Itoa((rand.Intn(5) + 1) * 100),
		DueType:       dueTypes[rand.Intn(len(dueTypes))],
		PaymentMethod: methods[rand.Intn(len(methods))],
		CreatedAt:     time.Now().UTC(),
	}
	if tx.Email == "" {
		tx.Email = "smoke@example.com"
	}

	// a few records without an amount exercise the placeholder
	if rand.Float64() >= 0.1 {
		amount := rand.Intn(50000) + 500
		tx.Amount = &amount
	}
	if tx.DueType == "hostel" {
		tx.Hostel = "Queen Amina Hall"
		tx.RoomNumber = fmt.Sprintf("B%d", rand.Intn(40)+1)
	}
	if send {
		tx.Status = "successful"
	}
	return tx
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
