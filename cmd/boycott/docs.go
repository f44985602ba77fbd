package main

// @title Weekly Boycott API
// @version 1.0
// @description Backend for the weekly boycott list: ranked product listings, weekly votes and likes, and the rotation job.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/boycottapp/weekly-boycott

// @license.name MIT
// @license.url https://github.com/boycottapp/weekly-boycott/blob/main/LICENSE

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Products
// @tag.description Ranked boycott and votable product listings

// @tag.name Votes
// @tag.description Weekly ballot submission

// @tag.name Likes
// @tag.description Per-product weekly likes

// @tag.name Admin
// @tag.description Operator endpoints

// @tag.name Stats
// @tag.description Weekly aggregates
