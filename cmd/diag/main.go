package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/mailscout/profile_go_server/config"
	"github.com/mailscout/profile_go_server/internal/database"
	"github.com/mailscout/profile_go_server/internal/pkg/oss"
	"github.com/mailscout/profile_go_server/internal/repository"
)

var (
	dump   = flag.Bool("dump", true, "Dump the profiles table")
	totals = flag.Bool("totals", true, "Print credit totals per plan")
	export = flag.Bool("export", false, "Upload the JSON dump to OSS")
	limit  = flag.Int("limit", 50, "Max profiles to dump, 0 for all")
)

func main() {
	flag.Parse()

	log.Println("🔍 Starting profiles diagnostics...")

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 连接数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	profileRepo := repository.NewProfileRepository(db)

	// 1. 档案明细
	if *dump || *export {
		profiles, err := profileRepo.List(*limit)
		if err != nil {
			log.Fatalf("Failed to list profiles: %v", err)
		}

		if *dump {
			log.Printf("\n📋 Profiles (%d rows):", len(profiles))
			for _, p := range profiles {
				expiry := "-"
				if p.PlanExpiry != nil {
					expiry = p.PlanExpiry.Format("2006-01-02")
				}
				log.Printf("  - %-30s %-25s plan=%-8s find=%-4d verify=%-4d expiry=%s",
					p.ID, p.Email, p.Plan, p.CreditsFind, p.CreditsVerify, expiry)
			}
		}

		// 2. 导出到 OSS
		if *export {
			if cfg.OSS.Endpoint == "" || cfg.OSS.AccessKeyID == "" {
				log.Fatalf("OSS is not configured, cannot export")
			}
			ossClient, err := oss.NewClient(&cfg.OSS)
			if err != nil {
				log.Fatalf("Failed to init OSS client: %v", err)
			}

			data, err := json.MarshalIndent(profiles, "", "  ")
			if err != nil {
				log.Fatalf("Failed to marshal dump: %v", err)
			}

			url, err := ossClient.UploadProfileDump(data)
			if err != nil {
				log.Fatalf("Failed to upload dump: %v", err)
			}
			log.Printf("\n📤 Dump exported: %s", url)
		}
	}

	// 3. 按套餐汇总
	if *totals {
		planTotals, err := profileRepo.CountByPlan()
		if err != nil {
			log.Fatalf("Failed to aggregate plans: %v", err)
		}

		log.Println("\n" + strings.Repeat("=", 60))
		log.Println("📊 Credit totals per plan")
		log.Println(strings.Repeat("=", 60))
		var mrr float64
		for _, t := range planTotals {
			revenue := float64(t.Count) * cfg.Plans[t.Plan].Price
			mrr += revenue
			log.Printf("  %-10s profiles=%-6d credits_find=%-8d credits_verify=%-8d revenue=%.2f",
				t.Plan, t.Count, t.CreditsFind, t.CreditsVerify, revenue)
		}
		log.Println(strings.Repeat("=", 60))
		log.Printf("💰 Estimated MRR: %.2f", mrr)
	}

	log.Println("\n✅ Diagnostics completed")
}
