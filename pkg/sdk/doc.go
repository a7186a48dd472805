// Package notedex provides an embedded Go client for the notedex meeting
// note store: CRUD over client meeting notes plus natural-language search
// ("3 bed 2 bath under 500k", "pre-approved first time buyers downtown").
//
//	client, _ := notedex.New(ctx, notedex.WithMemory())
//	defer client.Close()
//
//	created, _ := client.CreateNote(ctx, notedex.NoteInput{
//	    ClientName:  "Jordan Reyes",
//	    MeetingDate: time.Now(),
//	    Notes:       "First-time buyer, pre-approved, wants a condo downtown",
//	    Requirements: &notedex.Requirements{
//	        PropertyType: "Condo",
//	        Bedrooms:     2,
//	        MaxPrice:     400000,
//	    },
//	})
//
//	resp, _ := client.Search(ctx, "condo under 450k for a first time buyer")
//	for _, r := range resp.Results {
//	    fmt.Println(r.Note.ClientName, r.Score, r.MatchReasons)
//	}
package notedex
