package assistant

import (
	"context"
	"fmt"

	"go-grocer-api/internal/product"

	"go.uber.org/zap"
)

const searchLimit = 10

type Service interface {
	// Process classifies one utterance and resolves its payload. Failures
	// degrade into a could-not-process message; Process never errors.
	Process(ctx context.Context, command string) VoiceCommandResult
}

type service struct {
	productSvc product.Service
	logger     *zap.Logger
}

func NewService(productSvc product.Service, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		productSvc: productSvc,
		logger:     logger.Named("assistant.service"),
	}
}

func (s *service) Process(ctx context.Context, command string) VoiceCommandResult {
	intent, term := Classify(command)

	switch intent {
	case IntentHelp:
		return VoiceCommandResult{
			Intent:  IntentHelp,
			Message: "You can ask me to search for products, add items to your cart, open your cart, check your orders, or open your profile.",
		}

	case IntentOpenProfile:
		return VoiceCommandResult{
			Intent:  IntentOpenProfile,
			Message: "Opening your profile.",
		}

	case IntentViewOrders:
		return VoiceCommandResult{
			Intent:  IntentViewOrders,
			Message: "Fetching your orders.",
		}

	case IntentViewCart:
		return VoiceCommandResult{
			Intent:  IntentViewCart,
			Message: "Opening your cart.",
		}

	case IntentSearch:
		return s.search(ctx, term)

	case IntentAddToCart:
		return s.addToCart(ctx, term)

	default:
		return VoiceCommandResult{
			Intent:  IntentUnknown,
			Message: fmt.Sprintf("I heard: %q. Try asking me to search for a product or open your cart.", command),
		}
	}
}

func (s *service) search(ctx context.Context, term string) VoiceCommandResult {
	if term == "" {
		return VoiceCommandResult{
			Intent:  IntentSearch,
			Message: "Please tell me what you would like to search for.",
		}
	}

	products, err := s.productSvc.Search(ctx, term, searchLimit)
	if err != nil {
		s.logger.Error("product search failed", zap.String("term", term), zap.Error(err))
		return couldNotProcess(IntentSearch)
	}

	if len(products) == 0 {
		return VoiceCommandResult{
			Intent:     IntentSearch,
			SearchTerm: term,
			Message:    fmt.Sprintf("I could not find anything matching %q.", term),
		}
	}

	responses := make([]product.ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, product.ToResponse(p))
	}

	return VoiceCommandResult{
		Intent:     IntentSearch,
		SearchTerm: term,
		Products:   responses,
		Message:    fmt.Sprintf("Found %d products for %q.", len(products), term),
	}
}

func (s *service) addToCart(ctx context.Context, term string) VoiceCommandResult {
	if term == "" {
		return VoiceCommandResult{
			Intent:  IntentAddToCart,
			Message: "Please tell me which product to add to your cart.",
		}
	}

	products, err := s.productSvc.Search(ctx, term, searchLimit)
	if err != nil {
		s.logger.Error("product lookup failed", zap.String("term", term), zap.Error(err))
		return couldNotProcess(IntentAddToCart)
	}

	switch len(products) {
	case 0:
		return VoiceCommandResult{
			Intent:     IntentAddToCart,
			SearchTerm: term,
			Message:    fmt.Sprintf("I could not find a product matching %q.", term),
		}
	case 1:
		// unique match; the client confirms and performs the actual add
		resp := product.ToResponse(products[0])
		return VoiceCommandResult{
			Intent:     IntentAddToCart,
			SearchTerm: term,
			Product:    &resp,
			Message:    fmt.Sprintf("Found %s. Adding it to your cart.", products[0].Title),
		}
	default:
		responses := make([]product.ProductResponse, 0, len(products))
		for _, p := range products {
			responses = append(responses, product.ToResponse(p))
		}
		return VoiceCommandResult{
			Intent:     IntentAddToCart,
			SearchTerm: term,
			Products:   responses,
			Message:    fmt.Sprintf("I found %d products matching %q. Which one would you like?", len(products), term),
		}
	}
}

func couldNotProcess(intent Intent) VoiceCommandResult {
	return VoiceCommandResult{
		Intent:  intent,
		Message: "Sorry, I could not process that command. Please try again.",
	}
}
