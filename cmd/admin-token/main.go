// Command admin-token prints a bearer token for the admin API signed with JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"innkeep/config"
	"innkeep/utils"
)

func main() {
	subject := flag.String("sub", "admin", "token subject")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	config.LoadConfig()
	token, err := utils.GenerateToken(*subject, utils.RoleAdmin, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "admin-token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
