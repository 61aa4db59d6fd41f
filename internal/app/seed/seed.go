// Package seed loads the demo catalog shipped with the store.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/R3E-Network/petstore/internal/app/domain/product"
	"github.com/R3E-Network/petstore/internal/app/services/catalog"
	apperrors "github.com/R3E-Network/petstore/internal/errors"
	"github.com/R3E-Network/petstore/internal/logging"
)

//go:embed catalog.yaml
var demoCatalog []byte

type catalogFile struct {
	Products []struct {
		Number        string `yaml:"number"`
		Name          string `yaml:"name"`
		Description   string `yaml:"description"`
		PhotoFileName string `yaml:"photo_file_name"`
		Items         []struct {
			Number      string `yaml:"number"`
			Description string `yaml:"description"`
			Price       string `yaml:"price"`
		} `yaml:"items"`
	} `yaml:"products"`
}

// Result counts what a load added.
type Result struct {
	Products int
	Items    int
}

// Demo loads the embedded demo catalog.
func Demo(ctx context.Context, svc *catalog.Service, log *logging.Logger) (Result, error) {
	return Load(ctx, svc, demoCatalog, log)
}

// Load adds the products and items described by a YAML catalog. Entries that
// already exist are skipped, so loading twice is harmless.
func Load(ctx context.Context, svc *catalog.Service, data []byte, log *logging.Logger) (Result, error) {
	if log == nil {
		log = logging.NewDefault("seed")
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Result{}, fmt.Errorf("parse catalog: %w", err)
	}

	var res Result
	for _, p := range file.Products {
		_, err := svc.AddProduct(ctx, product.Product{
			Number:        p.Number,
			Name:          p.Name,
			Description:   p.Description,
			PhotoFileName: p.PhotoFileName,
		})
		switch {
		case err == nil:
			res.Products++
		case isConflict(err):
		default:
			return res, fmt.Errorf("add product %s: %w", p.Number, err)
		}

		for _, item := range p.Items {
			price, err := decimal.NewFromString(item.Price)
			if err != nil {
				return res, fmt.Errorf("item %s: bad price %q: %w", item.Number, item.Price, err)
			}
			_, err = svc.AddItem(ctx, product.Item{
				Number:        item.Number,
				ProductNumber: p.Number,
				Description:   item.Description,
				Price:         price,
			})
			switch {
			case err == nil:
				res.Items++
			case isConflict(err):
			default:
				return res, fmt.Errorf("add item %s: %w", item.Number, err)
			}
		}
	}

	log.WithField("products", res.Products).
		WithField("items", res.Items).
		Info("catalog loaded")
	return res, nil
}

func isConflict(err error) bool {
	var serviceErr *apperrors.ServiceError
	return errors.As(err, &serviceErr) && serviceErr.Code == apperrors.CodeConflict
}
