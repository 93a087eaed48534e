package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/logger"
	"github.com/gemdesk/internal/models"
	"github.com/gemdesk/internal/repository"
	"github.com/gemdesk/internal/service"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type optionSeed struct {
	Type   string
	Name   string
	SizeMM string
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	log := logger.S()
	if err := models.InitDB(cfg.Database.Options()); err != nil {
		log.Fatalw("database_init_failed", "driver", cfg.Database.Driver, "error", err)
	}
	if result, err := models.EnsureDefaultAdmin(models.DB, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Warnw("default_admin_init_failed", "error", err)
	} else if result.Created {
		log.Infow("default_admin_created", "email", result.Email, "default_password", result.DefaultPassword)
	}

	ctx := context.Background()
	db := models.DB
	attributeRepo := repository.NewAttributeRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	attributes := service.NewAttributeService(attributeRepo, nil, 0)
	taxonomy := service.NewTaxonomyService(categoryRepo, attributes)
	products := service.NewProductService(repository.NewProductRepository(db), categoryRepo, attributeRepo, nil)
	homepage := service.NewHomepageService(repository.NewHomepageRepository(db), nil)
	faqs := service.NewFAQService(repository.NewFAQRepository(db))
	blogs := service.NewBlogService(repository.NewBlogRepository(db))

	// 属性目录
	optionIDs := map[string]uint{}
	catalog, err := attributes.Catalog(ctx)
	if err != nil {
		log.Fatalf("Failed to load attributes: %v", err)
	}
	for _, attrType := range service.AttributeTypes {
		for _, option := range catalog.Family(attrType).Options {
			optionIDs[attrType+":"+option.OptionValue] = option.ID
		}
	}
	optionSeeds := []optionSeed{
		{Type: constants.AttributeTypeMetal, Name: "18K Yellow Gold"},
		{Type: constants.AttributeTypeMetal, Name: "18K White Gold"},
		{Type: constants.AttributeTypeMetal, Name: "Platinum"},
		{Type: constants.AttributeTypeDiamond, Name: "Lab Grown VS1"},
		{Type: constants.AttributeTypeDiamond, Name: "Natural VVS2"},
		{Type: constants.AttributeTypeSize, Name: "Size 6", SizeMM: "16.5"},
		{Type: constants.AttributeTypeSize, Name: "Size 7", SizeMM: "17.3"},
		{Type: constants.AttributeTypeSize, Name: "Size 8", SizeMM: "18.2"},
	}
	for _, seed := range optionSeeds {
		key := seed.Type + ":" + service.Slugify(seed.Name)
		if _, ok := optionIDs[key]; ok {
			log.Infof("Attribute option already exists: %s", seed.Name)
			continue
		}
		input := service.AttributeOptionInput{Type: seed.Type, Name: seed.Name}
		if seed.SizeMM != "" {
			size := decimal.RequireFromString(seed.SizeMM)
			input.SizeMM = &size
		}
		option, err := attributes.AddOption(ctx, input)
		if err != nil {
			log.Warnf("Failed to create option %s: %v", seed.Name, err)
			continue
		}
		optionIDs[key] = option.ID
		log.Infof("Created attribute option: %s", seed.Name)
	}

	// 分类及款式/金属维度
	categoryIDs := map[string]uint{}
	categorySeeds := []struct {
		Name   string
		Image  string
		Styles []string
		Metals []string
	}{
		{Name: "Rings", Image: "/uploads/seed/rings.jpg", Styles: []string{"Solitaire", "Halo", "Eternity"}, Metals: []string{"Gold", "Platinum"}},
		{Name: "Earrings", Image: "/uploads/seed/earrings.jpg", Styles: []string{"Studs", "Hoops"}, Metals: []string{"Gold", "Silver"}},
		{Name: "Necklaces", Image: "/uploads/seed/necklaces.jpg", Styles: []string{"Pendant", "Choker"}, Metals: []string{"Gold"}},
		{Name: "Bangles", Image: "/uploads/seed/bangles.jpg", Styles: []string{"Kada", "Cuff"}, Metals: []string{"Gold", "Rose Gold"}},
	}
	for index, seed := range categorySeeds {
		var existing models.Category
		err := db.Where("slug = ?", service.Slugify(seed.Name)).First(&existing).Error
		if err == nil {
			categoryIDs[seed.Name] = existing.ID
			log.Infof("Category already exists: %s", seed.Name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to query category %s: %v", seed.Name, err)
		}
		category, err := taxonomy.CreateCategory(service.CategoryInput{
			Name:      seed.Name,
			Image:     seed.Image,
			SortOrder: (len(categorySeeds) - index) * 10,
		})
		if err != nil {
			log.Warnf("Failed to create category %s: %v", seed.Name, err)
			continue
		}
		categoryIDs[seed.Name] = category.ID
		for _, style := range seed.Styles {
			if _, err := taxonomy.CreateStyle(category.ID, style); err != nil {
				log.Warnf("Failed to create style %s: %v", style, err)
			}
		}
		for _, metal := range seed.Metals {
			if _, err := taxonomy.CreateMetal(category.ID, metal); err != nil {
				log.Warnf("Failed to create metal %s: %v", metal, err)
			}
		}
		log.Infof("Created category: %s", seed.Name)
	}

	// 商品与变体
	var productCount int64
	if err := db.Model(&models.Product{}).Count(&productCount).Error; err != nil {
		log.Fatalf("Failed to count products: %v", err)
	}
	var productIDs []uint
	if productCount == 0 && categoryIDs["Rings"] > 0 {
		goldID := optionIDs[constants.AttributeTypeMetal+":18k-yellow-gold"]
		platinumID := optionIDs[constants.AttributeTypeMetal+":platinum"]
		labID := optionIDs[constants.AttributeTypeDiamond+":lab-grown-vs1"]
		variants := make([]service.VariantInput, 0)
		for _, metal := range []uint{goldID, platinumID} {
			for i, size := range []string{"size-6", "size-7", "size-8"} {
				metalID, diamondID := metal, labID
				base := 45000 + i*1500
				if metal == platinumID {
					base += 12000
				}
				variants = append(variants, service.VariantInput{
					MetalOptionID:   &metalID,
					DiamondOptionID: &diamondID,
					SizeOptionID:    optionIDs[constants.AttributeTypeSize+":"+size],
					OriginalPrice:   models.NewMoneyFromDecimal(decimal.NewFromInt(int64(base))),
					FileTypes:       []string{"stl", "3dm"},
				})
			}
		}
		solitaire, err := products.CreateWithVariants(ctx, service.ProductInput{
			CategoryID:    categoryIDs["Rings"],
			Name:          "Classic Solitaire Ring",
			Description:   "A single brilliant cut stone on a slim band.",
			Price:         models.MustMoney("42750"),
			OriginalPrice: models.MustMoney("45000"),
			Discount:      decimal.NewFromInt(5),
			Featured:      []string{"bestseller"},
			Gender:        []string{"women"},
			Images:        []string{"/uploads/seed/solitaire-1.jpg", "/uploads/seed/solitaire-2.jpg"},
		}, variants)
		if err != nil {
			log.Warnf("Failed to create product: %v", err)
		} else {
			productIDs = append(productIDs, solitaire.ID)
			log.Infof("Created product: %s (%d variants)", solitaire.Name, len(solitaire.Variants))
		}
		if categoryIDs["Earrings"] > 0 {
			studs, err := products.CreateWithVariants(ctx, service.ProductInput{
				CategoryID:    categoryIDs["Earrings"],
				Name:          "Diamond Stud Earrings",
				Description:   "Four prong studs for everyday wear.",
				Price:         models.MustMoney("18500"),
				OriginalPrice: models.MustMoney("18500"),
				Featured:      []string{"new-arrival"},
				Gender:        []string{"women", "unisex"},
				Images:        []string{"/uploads/seed/studs.jpg"},
			}, nil)
			if err != nil {
				log.Warnf("Failed to create product: %v", err)
			} else {
				productIDs = append(productIDs, studs.ID)
				log.Infof("Created product: %s", studs.Name)
			}
		}
	} else {
		log.Infof("Products already exist, skipping")
	}

	// 首页区块
	sections, err := homepage.List()
	if err != nil {
		log.Fatalf("Failed to list homepage sections: %v", err)
	}
	if len(sections) == 0 {
		highlightIDs := make([]uint, 0, len(categoryIDs))
		for _, name := range []string{"Rings", "Earrings", "Necklaces"} {
			if id := categoryIDs[name]; id > 0 {
				highlightIDs = append(highlightIDs, id)
			}
		}
		sectionSeeds := []service.HomepageSectionInput{
			{
				Name: "Hero",
				Type: constants.SectionTypeHero,
				SectionData: models.SectionData{
					Title: "Fine Jewellery, Made to Order",
					Items: []models.SectionItem{{Title: "Bridal Edit", Image: "/uploads/seed/hero.jpg", Link: "/collections/bridal", ButtonText: "Shop now"}},
				},
			},
			{
				Name: "Why us",
				Type: constants.SectionTypeFeature,
				SectionData: models.SectionData{
					Title: "Crafted with care",
					Items: []models.SectionItem{
						{Title: "Certified diamonds", Icon: "gem"},
						{Title: "Lifetime exchange", Icon: "refresh"},
						{Title: "Free insured shipping", Icon: "truck"},
					},
				},
			},
			{
				Name: "Shop by category",
				Type: constants.SectionTypeCategoryHighlight,
				SectionData: models.SectionData{
					Title: "Shop by category",
					Items: []models.SectionItem{{Title: "Everyday", CategoryIDs: highlightIDs}},
				},
			},
		}
		for _, input := range sectionSeeds {
			if input.Type == constants.SectionTypeCategoryHighlight && len(highlightIDs) == 0 {
				continue
			}
			if _, err := homepage.Create(ctx, input); err != nil {
				log.Warnf("Failed to create section %s: %v", input.Name, err)
			} else {
				log.Infof("Created homepage section: %s", input.Name)
			}
		}
	} else {
		log.Infof("Homepage sections already exist, skipping")
	}

	// FAQ 与博客
	_, faqTotal, err := faqs.List(repository.FAQListFilter{Page: 1, PageSize: 1})
	if err != nil {
		log.Fatalf("Failed to list faqs: %v", err)
	}
	if faqTotal == 0 {
		faqSeeds := []service.FAQInput{
			{Question: "Are your diamonds certified?", Answer: "Every stone above 0.3ct ships with an IGI or GIA certificate.", Category: "Diamonds", SortOrder: 30, IsActive: true},
			{Question: "How long does a custom ring take?", Answer: "Made to order pieces ship within 15 working days.", Category: "Orders", SortOrder: 20, IsActive: true},
			{Question: "Can I resize my ring later?", Answer: "Yes, one free resize is included within 60 days of delivery.", Category: "Care", SortOrder: 10, IsActive: true},
		}
		for _, input := range faqSeeds {
			if _, err := faqs.Create(input); err != nil {
				log.Warnf("Failed to create faq: %v", err)
			}
		}
		log.Infof("Created %d faqs", len(faqSeeds))
	}
	if _, err := blogs.Create(service.BlogInput{
		Title:       "How to Pick a Ring Size",
		Excerpt:     "Measure twice, order once.",
		Content:     "Use a strip of paper around your finger and compare the length against our size chart.",
		Author:      "GemDesk Studio",
		Tags:        []string{"guides", "rings"},
		IsPublished: true,
	}); err != nil && !errors.Is(err, service.ErrSlugExists) {
		log.Warnf("Failed to create blog: %v", err)
	}

	// 评价、询价与订单样例
	for i, productID := range productIDs {
		review := models.Review{
			ProductID:    productID,
			CustomerName: fmt.Sprintf("Customer %d", i+1),
			Rating:       5 - i,
			Comment:      "Beautiful finish and quick delivery.",
		}
		if err := db.Create(&review).Error; err != nil {
			log.Warnf("Failed to create review: %v", err)
		}
		enquiry := models.Enquiry{
			Name:      fmt.Sprintf("Enquirer %d", i+1),
			Email:     fmt.Sprintf("enquiry%d@example.com", i+1),
			Message:   "Is this available in rose gold?",
			ProductID: &productIDs[i],
			Status:    constants.EnquiryStatusNew,
		}
		if err := db.Create(&enquiry).Error; err != nil {
			log.Warnf("Failed to create enquiry: %v", err)
		}
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		log.Fatalf("Failed to count orders: %v", err)
	}
	if orderCount == 0 && len(productIDs) > 0 {
		statuses := []string{
			constants.OrderStatusPending,
			constants.OrderStatusProcessing,
			constants.OrderStatusShipped,
			constants.OrderStatusDelivered,
			constants.OrderStatusCancelled,
		}
		now := time.Now()
		for i, status := range statuses {
			price := models.NewMoneyFromDecimal(decimal.NewFromInt(int64(18500 + i*6000)))
			order := models.Order{
				OrderNo:         fmt.Sprintf("GD%s%03d", now.Format("20060102"), i+1),
				CustomerName:    fmt.Sprintf("Buyer %d", i+1),
				CustomerEmail:   fmt.Sprintf("buyer%d@example.com", i+1),
				CustomerPhone:   "+91 98765 4321" + fmt.Sprint(i),
				ShippingAddress: "12 MG Road, Bengaluru 560001",
				Items: datatypes.JSONSlice[models.OrderItem]{{
					ProductID: productIDs[i%len(productIDs)],
					Name:      "Seed item",
					Quantity:  1,
					UnitPrice: price,
				}},
				TotalAmount: price,
				Status:      status,
				CreatedAt:   now.AddDate(0, 0, -i),
			}
			if err := db.Create(&order).Error; err != nil {
				log.Warnf("Failed to create order: %v", err)
			}
		}
		log.Infof("Created %d orders", len(statuses))
	}

	log.Info("seed_completed")
}
