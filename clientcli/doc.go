// Package clientcli is a client library for stowgate servers.
//
// Uploads use the server's two-phase flow: Prepare asks for a ticket carrying
// a derived key, then Put sends the bytes to the ticket's URL. Both calls carry
// the admin token in the x-admin-token header.
//
//	client, err := clientcli.New(&clientcli.Config{
//		Endpoint:   "http://localhost:5708",
//		AdminToken: os.Getenv("STOWGATE_ADMIN_TOKEN"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	results, err := client.Upload(ctx, clientcli.UploadOptions{
//		LocalPath: "./avatar.png",
//		PathHint:  "users/42",
//	})
//
// # Profiles
//
// Connection settings live in ~/.stowgate/config.yaml as named profiles.
// ResolveConfig merges the selected profile with STOWGATE_* environment
// variables and command-line values.
//
//	cfg, err := clientcli.ResolveConfig(clientcli.ResolveOptions{Profile: "prod"})
package clientcli
