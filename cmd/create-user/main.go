// Command-line tool to create a user account without going through the API.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"JobJumper-backend/internal/database"
	"JobJumper-backend/internal/model"
	"JobJumper-backend/internal/utilities"
)

func main() {

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Enter username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	fmt.Print("Enter password: ")
	password1, _ := reader.ReadString('\n')
	password1 = strings.TrimSpace(password1)

	fmt.Print("Confirm password: ")
	password2, _ := reader.ReadString('\n')
	password2 = strings.TrimSpace(password2)

	if password1 != password2 {
		fmt.Println("Passwords do not match.")
		os.Exit(1)
	}
	if len(password1) < 8 {
		fmt.Println("Password should longer or equal to 8 characters")
		os.Exit(1)
	}

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialize: %v", err)
	}

	var count int64
	db.Model(&model.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		fmt.Println("Username already taken")
		os.Exit(1)
	}

	hashedPassword, err := utilities.HashPassword(password1)
	if err != nil {
		log.Fatal("failed to hash password: ", err)
	}

	user := model.User{
		Username: username,
		Password: hashedPassword,
		Role:     model.RoleUser,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatal("failed to create user: ", err)
	}

	fmt.Println("User created successfully!")
	fmt.Println("======================================")
	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("User ID:  %s\n", user.ID)
	fmt.Println("======================================")
}
