package main

//go:generate swag init -g cmd/viewer/main.go -o docs

// @title           Hiding Book Viewer API
// @version         0.1.0
// @description     Read-only analytics over Hiding Book orders, fills and keeper auctions.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
