// Package storefront provides a client for the TaskHive shop API, a proxy in
// front of a retail e-commerce backend.
//
// The API covers store lookup, product detail and cart mutation. Product and
// cart operations are executed through a caller-supplied proxy; cart
// mutations additionally require the caller's retail access token.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := storefront.NewClient("your-api-key", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	stores, err := client.NearbyStores(ctx, storefront.NearbyStoresInput{
//		Latitude:  40.7147,
//		Longitude: -74.0112,
//		Limit:     5,
//	})
//
// All inputs are validated locally before any network call; constraint
// violations surface as *apierr.Error with the invalid-request kind and a
// zero status code.
package storefront
