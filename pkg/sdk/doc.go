// Package lexsearch provides a Go client for the lexsearch query API.
//
// The service takes a free-form shopping query, classifies its intent and
// answers with the matching retrieval strategy: a hybrid product search,
// a multi-query exploration, a grounded support answer, or a request for
// clarification.
//
//	client := lexsearch.New("https://search.lexora.shop")
//	resp, err := client.Query(ctx, "formal shoes for a wedding", nil)
//	if err != nil { ... }
//	for _, h := range resp.Hits {
//	    fmt.Println(h.Title, h.Score)
//	}
//
// Image search takes raw image bytes and returns visually similar products:
//
//	resp, err := client.SearchImage(ctx, imageBytes)
package lexsearch
