package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/kitty"
	"github.com/etnz/kitty/docs"
	"github.com/etnz/kitty/renderer"
	"google.golang.org/genai"
)

// Model is the model used by every expert.
var Model = "gemini-2.5-pro"

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: Model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and of answering the user's request.

			The user shares expenses with a group of people, and wants to know who owes what,
			why, and how to settle. Learn about the experts from the Tools, and ask them questions.
			They keep context of your previous questions.

			Answer in short markdown. Amounts always come with their currency.
		`),
		},
		Library: NewLibrary(experts),
	}
}

// NewTreasurer creates the expert holding the report.
func NewTreasurer(r *kitty.Report) *Expert {
	lib := Functions(r)
	return &Expert{
		Name: "Treasurer",
		Description: `This is the Treasurer. It holds the kitty: every expense, balance and transfer.
		Ask it about what someone paid, owes or is owed, and about how expenses were split.`,
		ModelName: Model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are the treasurer of a group sharing expenses.
			Use the Tools to read the report: balances, transfers, and each member's share of each item.
			Member names are case insensitive, pardon approximate spelling.
			Positive balances are owed money, negative balances owe money.

			How the kitty works:
			` + topic("splits") + topic("settlement")),
		},
		Library: NewLibrary(lib),
	}
}

// topic returns a documentation topic, or nothing if it is missing.
func topic(name string) string {
	content, err := docs.GetTopic(name)
	if err != nil {
		return ""
	}
	return content
}

// Functions returns the functions reading r.
func Functions(r *kitty.Report) []*Func {
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Report",
				Description: "Report returns the whole report: split matrix, balances and transfers, as markdown tables.",
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown report.",
				},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				return renderer.RenderReport(r, renderer.ReportRenderOptions{}), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Transfers",
				Description: "Transfers lists the transfers that settle the kitty, between members or between subgroups.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"by": {
							Type:        genai.TypeString,
							Enum:        []string{"member", "subgroup"},
							Description: "Settle between members (default) or between subgroups.",
						},
					},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A markdown table of transfers.",
				},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				by, _ := args["by"].(string)
				switch by {
				case "", "member":
					return renderer.RenderTransfers(r, false), nil
				case "subgroup":
					return renderer.RenderTransfers(r, true), nil
				default:
					return "", fmt.Errorf("argument 'by' must be member or subgroup, got %q", by)
				}
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Member",
				Description: "Member details one member: balance, share of every item, transfers to pay or receive.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name": {
							Type:        genai.TypeString,
							Description: "The member name, case insensitive.",
						},
					},
					Required: []string{"name"},
				},
				Response: &genai.Schema{
					Type:        genai.TypeString,
					Description: "A plain text summary of the member.",
				},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				name, _ := args["name"].(string)
				return memberSummary(r, name)
			},
		},
	}
}

// memberSummary describes the position of one member in r.
func memberSummary(r *kitty.Report, name string) (string, error) {
	m, ok := kitty.Normalize(name)
	if !ok {
		return "", fmt.Errorf("argument 'name' is required")
	}
	if _, known := kitty.Lookup(r.Balances, m); !known {
		names := make([]string, len(r.Members))
		for i, k := range r.Members {
			names[i] = k.Title()
		}
		return "", fmt.Errorf("unknown member %q, members are: %s", name, strings.Join(names, ", "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s has a balance of %s.\n", m.Title(), r.Balance(m).SignedString())
	for _, item := range r.Splits.Items() {
		if r.Splits.Involved(item, m) {
			fmt.Fprintf(&b, "- %s: %s\n", item, r.Splits.Share(item, m).SignedString())
		}
	}
	for _, t := range r.TransfersOf(m) {
		if t.From == m {
			fmt.Fprintf(&b, "Pays %s to %s.\n", t.Amount.String(), t.To.Title())
		} else {
			fmt.Fprintf(&b, "Receives %s from %s.\n", t.Amount.String(), t.From.Title())
		}
	}
	return b.String(), nil
}
