// Package solver provides a client for the TaskHive challenge-solving API.
//
// TaskHive solves anti-bot challenges (Cloudflare Turnstile, Kasada, Akamai,
// Arkose) on behalf of the caller. Each task type is its own endpoint under
// /solve/, and each has one client method with a typed input and a typed
// result.
//
// # Usage
//
// Create a client with your API key:
//
//	logger := zerolog.New(os.Stdout)
//	client, err := solver.NewClient("your-api-key", logger,
//		solver.WithTimeout(60*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := client.SolveTurnstile(ctx, solver.TurnstileInput{
//		PageURL: "https://example.com/login",
//		SiteKey: "0x4AAAAAAA",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Solution.Token)
//
// # Error handling
//
// Every failure is an *apierr.Error with a stable kind. Callers can branch
// on the classification without matching message strings:
//
//	var apiErr *apierr.Error
//	if errors.As(err, &apiErr) {
//		switch {
//		case apiErr.IsQuotaExceeded():
//			// top up credits
//		case apiErr.IsSolveFailed():
//			// retry the task
//		}
//	}
package solver
