package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/thingful/internal/client/client"
	"github.com/dmitrijs2005/thingful/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// report prints err in a form the user can act on and returns it unchanged.
func (a *App) report(err error) error {
	if errors.Is(err, client.ErrUnavailable) {
		fmt.Fprintln(a.out, "Server unavailable, try again later")
	} else {
		fmt.Fprintln(a.out, err.Error())
	}
	return err
}

// Register prompts for the account fields and creates the account.
// An empty nickname is sent as absent. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}

	nickname, err := getSimpleText(a.reader, "Enter nickname (optional)", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	callCtx, cancel := a.callContext(ctx)
	defer cancel()

	info, err := a.api.Register(callCtx, client.RegisterInput{
		UserName: userName,
		FullName: fullName,
		Nickname: nickname,
		Password: password,
	})
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "Registered %s (id %s)\n", info.UserName, info.ID)
	return nil
}

// Login prompts for credentials and keeps the issued token on success.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	callCtx, cancel := a.callContext(ctx)
	defer cancel()

	if err := a.api.Login(callCtx, userName, password); err != nil {
		return a.report(err)
	}

	a.userName = userName
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// WhoAmI asks the server who owns the current token.
func (a *App) WhoAmI(ctx context.Context) error {
	callCtx, cancel := a.callContext(ctx)
	defer cancel()

	id, err := a.api.WhoAmI(callCtx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.api.Logout()
			a.userName = ""
		}
		return a.report(err)
	}

	fmt.Fprintf(a.out, "%s (id %s)\n", id.UserName, id.UserID)
	return nil
}

// Logout forgets the access token.
func (a *App) Logout(_ context.Context) error {
	a.api.Logout()
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
