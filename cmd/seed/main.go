// seed crea el usuario administrador inicial.
//
// Uso: go run ./cmd/seed -username admin -password <password>
// Lee la conexión a la DB de las mismas variables de entorno que el API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/threadkeep/threadstock-api/internal/application/auth"
	"github.com/threadkeep/threadstock-api/internal/application/dto"
	"github.com/threadkeep/threadstock-api/internal/domain"
	"github.com/threadkeep/threadstock-api/internal/domain/entity"
	"github.com/threadkeep/threadstock-api/internal/infrastructure/postgres"
	"github.com/threadkeep/threadstock-api/pkg/config"
)

func main() {
	username := flag.String("username", "admin", "username del administrador")
	password := flag.String("password", "", "password del administrador (requerido)")
	role := flag.String("role", entity.RoleAdmin, "rol del usuario a crear")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "falta -password")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	authUC := auth.NewUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	user, err := authUC.CreateUser(dto.CreateUserRequest{
		Username: *username,
		Password: *password,
		Role:     *role,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUsernameAlreadyExists) {
			fmt.Printf("el usuario %q ya existe, nada que hacer\n", *username)
			return
		}
		fmt.Fprintf(os.Stderr, "crear usuario: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("usuario creado: %s (%s) rol %s\n", user.Username, user.ID, user.Role)
}
