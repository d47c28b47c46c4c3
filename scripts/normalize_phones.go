package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/AlexTLDR/wedding/internal/apiclient"
	"github.com/AlexTLDR/wedding/internal/utils"
)

// Rewrites guest request phone numbers to E.164 through the /api routes.
func main() {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	region := os.Getenv("PHONE_REGION")
	if region == "" {
		region = utils.DefaultPhoneRegion
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	api := apiclient.New(baseURL, nil)
	reqs, err := api.ListGuestRequests(ctx)
	if err != nil {
		log.Fatalf("Failed to list guest requests: %v", err)
	}

	fmt.Printf("Found %d guest requests to process\n", len(reqs))

	updated := 0
	failed := 0
	skipped := 0
	for _, r := range reqs {
		if strings.TrimSpace(r.Phone) == "" {
			skipped++
			continue
		}
		normalized, err := utils.NormalizePhoneNumber(r.Phone, region)
		if err != nil {
			log.Printf("Failed to normalize phone %q (%s): %v", r.Phone, r.Name, err)
			failed++
			continue
		}

		// Only update if the phone number changed
		if normalized != r.Phone {
			old := r.Phone
			r.Phone = normalized
			if err := api.UpdateGuestRequest(ctx, r); err != nil {
				log.Printf("Failed to update phone for %s: %v", r.Name, err)
				failed++
				continue
			}
			fmt.Printf("Updated %s: %q -> %q\n", r.Name, old, normalized)
			updated++
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total: %d\n", len(reqs))
	fmt.Printf("  Updated: %d\n", updated)
	fmt.Printf("  Failed: %d\n", failed)
	fmt.Printf("  No phone: %d\n", skipped)
	fmt.Printf("  Unchanged: %d\n", len(reqs)-updated-failed-skipped)
}
