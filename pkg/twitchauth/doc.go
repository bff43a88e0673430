/*
Package twitchauth is a small client for Twitch application credentials.

# Overview

Three operations are supported against https://id.twitch.tv/oauth2:

  - GetAppAccessToken: client credentials grant, POST /token
  - ValidateToken: token validation, GET /validate
  - RevokeToken: token revocation, POST /revoke

Each call is a single request. There is no caching, refresh or retry; the
caller decides what to do with an expired or rejected token.

# Client

A Client can be reused and shared between goroutines:

	client := twitchauth.NewClient()

	tok, err := client.GetAppAccessToken(ctx, clientID, clientSecret, []string{"user:read:email"})
	if err != nil {
		return err
	}

	info, err := client.ValidateToken(ctx, *tok)

	err = client.RevokeToken(ctx, *tok, clientID)

The package level functions of the same names construct a fresh Client per
call.

# Timeouts

No timeout is applied by default. Bound requests with the context or with
WithTimeout:

	client := twitchauth.NewClient(twitchauth.WithTimeout(5 * time.Second))

# Errors

Every failure is an *Error with one of three kinds:

  - KindTransport: the request did not complete (ErrTransport)
  - KindStatus: the server answered with a non-2xx status (ErrStatus)
  - KindDecode: a 2xx body was malformed or missing fields (ErrDecode)

Match them with errors.Is:

	tok, err := client.GetAppAccessToken(ctx, id, secret, nil)
	switch {
	case errors.Is(err, twitchauth.ErrStatus):
		log.Printf("rejected with %d", twitchauth.StatusCode(err))
	case errors.Is(err, twitchauth.ErrTransport):
		// network trouble, maybe try later
	}

Client secrets and tokens are redacted from request URLs before they reach
an error value.
*/
package twitchauth
