// Печатает bcrypt-хеш PIN-кода для AUTH_PIN_HASH.
package main

import (
	"flag"
	"fmt"
	"log"

	"service-tracker/pkg/utils"
)

func main() {
	pin := flag.String("pin", "", "PIN-код для входа")
	flag.Parse()

	if len(*pin) < 4 {
		log.Fatal("PIN должен содержать минимум 4 символа: hashpin -pin 1234")
	}

	hashed, err := utils.HashPassword(*pin)
	if err != nil {
		log.Fatalf("Ошибка при генерации хеша: %v", err)
	}
	fmt.Println(hashed)
}
