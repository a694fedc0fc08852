// Package roster provides an HTTP client for the player roster API.
//
// # Overview
//
// The roster API exposes a single collection, players, scoped by a cohort
// segment in the URL. This package handles HTTP communication, JSON envelope
// decoding, and the closed team and status tables used to display players.
//
// # Client Usage
//
//	client, err := roster.NewClient("https://fsa-puppy-bowl.herokuapp.com/api", "2501-ftb-et-web-pt")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	players, err := client.FetchAllPlayers(ctx)
//	if err != nil {
//		log.Printf("list failed: %v", err)
//	}
//
// # API Endpoints
//
// All paths are relative to <api base>/<cohort>:
//
//   - GET /players: { data: { players: [...] } }
//   - GET /players/{id}: { data: { player: {...} } }
//   - POST /players: body { name, breed, status, imageUrl, teamId }
//   - DELETE /players/{id}
//
// Mutation responses are not decoded beyond their failure shape. Callers
// re-fetch the collection after every mutation.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Set Accept: application/json and User-Agent: roster/0.1
//   - Carry a fresh X-Request-ID, repeated in error messages
//   - Have a 10-second timeout unless WithTimeout says otherwise
//
// # Error Handling
//
//   - Network errors: "execute request <id>: dial tcp: connection refused"
//   - HTTP errors: *StatusError, matching ErrStatus with errors.Is
//   - Envelope failures: success=false, with error.message when present
//   - Deserialization errors: "decode response: ...", and ErrEnvelope when a
//     2xx body has no data.players
//   - Status errors end with "(request <id>)"
//
// The client does not log and does not retry. The controller package decides
// what a failure means for the screen.
//
// # Display Tables
//
// TeamName and StatusLabel are the only way the UI turns raw ids and status
// codes into text. Each has an explicit fallback (TeamUnassigned, StatusNone)
// so a missing or unexpected value never reaches the screen verbatim.
package roster
