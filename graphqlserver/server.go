package graphqlserver

import (
	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"products.GO/graphql"
	"products.GO/graphql/resolvers"
	productService "products.GO/service/product"
)

// RootResolver is the root for graphql-go.
type RootResolver struct {
	Lookup *productService.LookupService
}

// Query returns the query resolver.
func (r *RootResolver) Query() *resolvers.QueryResolver {
	return resolvers.NewQueryResolver(r.Lookup)
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(lookup *productService.LookupService) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{Lookup: lookup})
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
