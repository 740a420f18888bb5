package main

import (
	"storefront/internal/infra/persistence/model"

	"gorm.io/gen"
)

func main() {
	models := []any{
		model.UserModel{},
		model.ProfileModel{},
		model.RoleModel{},
		model.UserRoleModel{},
		model.AddressModel{},
		model.ActivityLogModel{},
		model.RefreshTokenModel{},
		model.CategoryModel{},
		model.BrandModel{},
		model.ProductModel{},
		model.ProductVariantModel{},
		model.ProductImageModel{},
		model.ReviewModel{},
	}

	gen := gen.NewGenerator(gen.Config{
		OutPath: "./internal/infra/persistence/postgres/query",
	})

	gen.ApplyBasic(models...)

	gen.Execute()
}
