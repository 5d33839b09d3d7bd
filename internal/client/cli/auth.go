package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/postkeeper/internal/common"
)

func (a *App) Register(ctx context.Context) {

	nickname, err := GetSimpleText(a.reader, "Enter nickname", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	defer common.WipeByteArray(password)

	if err := a.api.SignUp(ctx, nickname, password); err != nil {
		fmt.Println(err.Error())
		return
	}

	a.userName = nickname
	fmt.Println("Registered and logged in!")
}

func (a *App) Login(ctx context.Context) {

	nickname, err := GetSimpleText(a.reader, "Enter nickname", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, nickname, password); err != nil {
		fmt.Println(err.Error())
		return
	}

	a.userName = nickname
	fmt.Println("Success!")
}

func (a *App) Logout(ctx context.Context) {
	if err := a.api.Logout(ctx); err != nil {
		fmt.Println(err.Error())
	}
	a.userName = ""
	fmt.Println("Logged out")
}

func (a *App) Renew(ctx context.Context) {
	if err := a.api.Renew(ctx); err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Println("Token renewed")
}
