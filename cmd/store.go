package cmd

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/taskhive-io/taskhive-go/storefront"
)

// Number of product lookups to run concurrently.
const productFetchLimit = 5

var (
	storeLat    float64
	storeLng    float64
	storeLimit  int
	storeRadius float64
	storeFilter string

	productProxy string

	cartTCIN        string
	cartQuantity    int
	cartFulfillment string
	cartStoreID     string
	cartAccessToken string
)

// storesCmd represents the stores command
var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "Search retail locations near a coordinate",
	RunE:  runStores,
}

// productCmd represents the product command
var productCmd = &cobra.Command{
	Use:   "product [tcin...]",
	Short: "Fetch product detail for one or more product ids",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProduct,
}

// cartCmd represents the cart command group
var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Cart operations",
}

var cartAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an item to the cart",
	RunE:  runCartAdd,
}

func init() {
	rootCmd.AddCommand(storesCmd)
	storesCmd.Flags().Float64Var(&storeLat, "lat", 0, "latitude")
	storesCmd.Flags().Float64Var(&storeLng, "lng", 0, "longitude")
	storesCmd.Flags().IntVar(&storeLimit, "limit", 0, "maximum number of results")
	storesCmd.Flags().Float64Var(&storeRadius, "radius", 0, "search radius in miles")
	storesCmd.Flags().StringVarP(&storeFilter, "filter", "f", "", "filter expression, e.g. 'Distance < 10 && Region == \"NY\"'")

	rootCmd.AddCommand(productCmd)
	productCmd.Flags().StringVar(&productProxy, "proxy", "", "proxy for the lookup (default from config)")

	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartAddCmd.Flags().StringVar(&cartTCIN, "tcin", "", "product id")
	cartAddCmd.Flags().IntVar(&cartQuantity, "quantity", 1, "quantity to add")
	cartAddCmd.Flags().StringVar(&cartFulfillment, "fulfillment", "", "fulfillment type: ship or pickup")
	cartAddCmd.Flags().StringVar(&cartStoreID, "store-id", "", "store id (required for pickup)")
	cartAddCmd.Flags().StringVar(&cartAccessToken, "access-token", "", "retail access token (default from config)")
	cartAddCmd.Flags().StringVar(&productProxy, "proxy", "", "proxy for the mutation (default from config)")
}

func runStores(cmd *cobra.Command, args []string) error {
	stores, err := shopClient.NearbyStores(cmd.Context(), storefront.NearbyStoresInput{
		Latitude:    storeLat,
		Longitude:   storeLng,
		Limit:       storeLimit,
		RadiusMiles: storeRadius,
	})
	if err != nil {
		return err
	}

	if storeFilter != "" {
		stores, err = filterStores(storeFilter, stores)
		if err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
	}

	for _, s := range stores {
		fmt.Printf("%-8s %-24s %6.1f mi  %s, %s %s\n",
			s.ID, s.Name, s.Distance, s.Address.City, s.Address.Region, s.Address.PostalCode)
	}
	logger.Info().Int("count", len(stores)).Msg("stores found")
	return nil
}

// filterStores applies a compiled expression to each store. The expression
// sees the store's fields by name and must evaluate to a boolean.
func filterStores(expression string, stores []storefront.Store) ([]storefront.Store, error) {
	program, err := expr.Compile(expression)
	if err != nil {
		return nil, err
	}

	var matched []storefront.Store
	for _, s := range stores {
		env := map[string]any{
			"ID":         s.ID,
			"Name":       s.Name,
			"Distance":   s.Distance,
			"Street":     s.Address.Street,
			"City":       s.Address.City,
			"Region":     s.Address.Region,
			"PostalCode": s.Address.PostalCode,
		}

		out, err := expr.Run(program, env)
		if err != nil {
			return nil, err
		}
		keep, ok := out.(bool)
		if !ok {
			return nil, fmt.Errorf("filter must evaluate to a boolean, got %T", out)
		}
		if keep {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func runProduct(cmd *cobra.Command, args []string) error {
	proxy := productProxy
	if proxy == "" {
		proxy = cfg.Proxy.Default
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(productFetchLimit)

	var mu sync.Mutex
	products := make([]*storefront.Product, 0, len(args))

	for _, tcin := range args {
		tcin := tcin
		g.Go(func() error {
			product, err := shopClient.GetProduct(ctx, storefront.ProductInput{
				TCIN:  tcin,
				Proxy: proxy,
			})
			if err != nil {
				return fmt.Errorf("product %s: %w", tcin, err)
			}
			mu.Lock()
			products = append(products, product)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return printJSON(products)
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	proxy := productProxy
	if proxy == "" {
		proxy = cfg.Proxy.Default
	}
	token := cartAccessToken
	if token == "" {
		token = cfg.Shop.AccessToken
	}

	result, err := shopClient.AddToCart(cmd.Context(), storefront.AddToCartInput{
		Proxy:       proxy,
		AccessToken: token,
		TCIN:        cartTCIN,
		Quantity:    cartQuantity,
		Fulfillment: storefront.FulfillmentType(cartFulfillment),
		StoreID:     cartStoreID,
	})
	if err != nil {
		return err
	}
	return printJSON(result)
}
