package catalogrepo

import (
	"context"

	"github.com/luvit/moodfit/internal/domain/profile"
	"github.com/luvit/moodfit/internal/domain/recommend"
)

// MemoryRepository serves the built-in tagged catalog. It backs the local
// engine when no database is configured and doubles as the dev/test repo.
type MemoryRepository struct {
	byLocale map[profile.Locale]recommend.Catalog
}

// NewMemoryRepository constructs the repository with the bundled catalog.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byLocale: map[profile.Locale]recommend.Catalog{
			profile.LocaleEN: seedEN(),
			profile.LocaleKO: seedKO(),
		},
	}
}

// Catalog implements recommend.CatalogRepository. Unknown locales fall back
// to English.
func (r *MemoryRepository) Catalog(_ context.Context, locale profile.Locale) (recommend.Catalog, error) {
	cat, ok := r.byLocale[locale]
	if !ok {
		cat = r.byLocale[profile.LocaleEN]
	}
	return cat, nil
}

func seedEN() recommend.Catalog {
	return recommend.Catalog{
		Recipes: []recommend.Recipe{
			{
				ID:       "r1",
				Tags:     []string{"Happy", "Energetic", "Summer", "Autumn", "ENFP", "healthy_fats"},
				Title:    "Citrus Salmon & Avocado Poke Bowl",
				Calories: 450,
				Protein:  "30g",
				Time:     "15m",
				Image:    "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?q=80&w=600&auto=format&fit=crop",
				Ingredients: []recommend.Ingredient{
					{Name: "Salmon", Amount: "150g", Origin: "Norway"},
					{Name: "Avocado", Amount: "1/2", Origin: "Mexico"},
					{Name: "Brown Rice", Amount: "1 cup", Origin: "Whole"},
				},
				Steps: []string{
					"Prepare the base: Rinse brown rice and cook.",
					"Slice the Salmon: Cut into 1/2 inch cubes.",
					"Mix the sauce: Soy sauce, sesame oil, and ginger.",
					"Assemble and serve chilled.",
				},
				Badge: "98% Match",
			},
			{
				ID:       "r2",
				Tags:     []string{"Tired", "Anxious", "Winter", "comfort_food"},
				Title:    "Warm Pumpkin & Ginger Soup",
				Calories: 320,
				Protein:  "8g",
				Time:     "25m",
				Image:    "https://images.unsplash.com/photo-1476718406336-bb5a9690ee2b?q=80&w=600&auto=format&fit=crop",
				Ingredients: []recommend.Ingredient{
					{Name: "Pumpkin", Amount: "400g"},
					{Name: "Ginger", Amount: "1 inch"},
					{Name: "Coconut Milk", Amount: "200ml"},
				},
				Steps: []string{"Roast pumpkin", "Blend with spices", "Simmer with coconut milk"},
				Badge: "Comfort Pick",
			},
		},
		Outfits: []recommend.Outfit{
			{
				ID:          "o1",
				Tags:        []string{"Autumn", "Winter", "Waist", "Energetic", "chic"},
				Title:       "Structured Layering",
				Description: "Balances structured layering with flow. High-waist definition targets your goal to minimize waist focus.",
				Image:       "https://images.unsplash.com/photo-1515886657613-9f3515b0c78f?q=80&w=600&auto=format&fit=crop",
				ProTip:      "Belt over coat",
				Hashtags:    []string{"#WaistFriendly", "#RelaxedFit"},
				Items: []recommend.OutfitItem{
					{Name: "Oversized Coat", Type: "Camel Wool"},
					{Name: "Belted Tunic", Type: "High Waist"},
					{Name: "Slim Trousers", Type: "Black Crepe"},
					{Name: "Mini Leather Bag", Type: "Accessory"},
				},
			},
			{
				ID:          "o2",
				Tags:        []string{"Summer", "Spring", "Legs", "Happy", "casual"},
				Title:       "Elongated High-Rise",
				Description: "High-waisted linen trousers paired with a cropped top to maximize leg length.",
				Image:       "https://images.unsplash.com/photo-1529139574466-a303027c1d8b?q=80&w=600&auto=format&fit=crop",
				ProTip:      "Tuck it in",
				Hashtags:    []string{"#LegsForDays", "#SummerBreeze"},
				Items: []recommend.OutfitItem{
					{Name: "Crop Top", Type: "Linen"},
					{Name: "High-Rise Pants", Type: "Wide Leg"},
					{Name: "Platform Sandals", Type: "Espadrille"},
					{Name: "Woven Tote", Type: "Accessory"},
				},
			},
		},
		Workouts: []recommend.Workout{
			{
				ID:        "w1",
				Tags:      []string{"Waist", "Energetic", "core"},
				Title:     "Waist Snatcher Routine",
				Duration:  "10 Mins",
				Intensity: recommend.IntensityMed,
				Exercises: []recommend.Exercise{
					{Name: "Russian Twists", Reps: "15 Reps", Description: "Sit on floor, lean back slightly, twist torso side to side.", Image: "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?q=80&w=200"},
					{Name: "Side Planks", Reps: "30s / Side", Description: "Lift hips to form a straight line from head to heels.", Image: "https://images.unsplash.com/photo-1566241440091-ec10de8db2e1?q=80&w=200"},
					{Name: "Bicycle Crunches", Reps: "20 Reps", Description: "Bring opposite elbow to knee in a pedaling motion.", Image: "https://images.unsplash.com/photo-1571019614242-c5c5dee9f50b?q=80&w=200"},
				},
			},
			{
				ID:        "w2",
				Tags:      []string{"Legs", "Tired", "stretch"},
				Title:     "Lazy Leg Sculpt",
				Duration:  "15 Mins",
				Intensity: recommend.IntensityLow,
				Exercises: []recommend.Exercise{
					{Name: "Lying Leg Raises", Reps: "12 Reps", Description: "Lie flat and lift legs without bending knees.", Image: "https://images.unsplash.com/photo-1599058945522-28d584b6f0ff?q=80&w=200"},
				},
			},
		},
	}
}

func seedKO() recommend.Catalog {
	return recommend.Catalog{
		Recipes: []recommend.Recipe{
			{
				ID:       "r1",
				Tags:     []string{"Happy", "Energetic", "Summer", "Autumn", "ENFP", "healthy_fats"},
				Title:    "시트러스 연어 & 아보카도 포케",
				Calories: 450,
				Protein:  "30g",
				Time:     "15분",
				Image:    "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?q=80&w=600&auto=format&fit=crop",
				Ingredients: []recommend.Ingredient{
					{Name: "연어", Amount: "150g", Origin: "노르웨이"},
					{Name: "아보카도", Amount: "1/2개", Origin: "멕시코"},
					{Name: "현미밥", Amount: "1공기", Origin: "국산"},
				},
				Steps: []string{
					"현미밥을 지어 준비합니다.",
					"연어를 1.5cm 큐브 모양으로 깍둑썰기 합니다.",
					"소스 만들기: 간장, 참기름, 생강을 섞어주세요.",
					"모든 재료를 예쁘게 담아 소스와 함께 냅니다.",
				},
				Badge: "98% 일치",
			},
			{
				ID:       "r2",
				Tags:     []string{"Tired", "Anxious", "Winter", "comfort_food"},
				Title:    "따뜻한 단호박 생강 수프",
				Calories: 320,
				Protein:  "8g",
				Time:     "25분",
				Image:    "https://images.unsplash.com/photo-1476718406336-bb5a9690ee2b?q=80&w=600&auto=format&fit=crop",
				Ingredients: []recommend.Ingredient{
					{Name: "단호박", Amount: "400g"},
					{Name: "생강", Amount: "1톨"},
					{Name: "코코넛 밀크", Amount: "200ml"},
				},
				Steps: []string{"단호박을 구워주세요", "향신료와 함께 블렌더에 갑니다", "코코넛 밀크를 넣고 끓여냅니다"},
				Badge: "위로가 되는 맛",
			},
		},
		Outfits: []recommend.Outfit{
			{
				ID:          "o1",
				Tags:        []string{"Autumn", "Winter", "Waist", "Energetic", "chic"},
				Title:       "구조적인 레이어링",
				Description: "흐르는 듯한 핏과 구조적인 실루엣의 조화. 하이웨이스트 디테일로 허리 라인을 자연스럽게 커버합니다.",
				Image:       "https://images.unsplash.com/photo-1515886657613-9f3515b0c78f?q=80&w=600&auto=format&fit=crop",
				ProTip:      "코트 위에 벨트 착용",
				Hashtags:    []string{"#허리커버", "#편안한핏"},
				Items: []recommend.OutfitItem{
					{Name: "오버사이즈 코트", Type: "카멜 울"},
					{Name: "벨티드 튜닉", Type: "하이웨이스트"},
					{Name: "슬림 슬랙스", Type: "블랙 크레이프"},
					{Name: "미니 레더 백", Type: "액세서리"},
				},
			},
			{
				ID:          "o2",
				Tags:        []string{"Summer", "Spring", "Legs", "Happy", "casual"},
				Title:       "다리가 길어보이는 하이라이즈",
				Description: "하이웨이스트 린넨 팬츠와 크롭 탑을 매치하여 다리 길이를 극대화하세요.",
				Image:       "https://images.unsplash.com/photo-1529139574466-a303027c1d8b?q=80&w=600&auto=format&fit=crop",
				ProTip:      "상의 넣어 입기",
				Hashtags:    []string{"#롱다리코디", "#여름바람"},
				Items: []recommend.OutfitItem{
					{Name: "크롭 탑", Type: "린넨"},
					{Name: "와이드 팬츠", Type: "하이라이즈"},
					{Name: "플랫폼 샌들", Type: "에스파듀"},
					{Name: "라탄 토트백", Type: "액세서리"},
				},
			},
		},
		Workouts: []recommend.Workout{
			{
				ID:        "w1",
				Tags:      []string{"Waist", "Energetic", "core"},
				Title:     "잘록한 허리 라인 루틴",
				Duration:  "10분",
				Intensity: recommend.IntensityMed,
				Exercises: []recommend.Exercise{
					{Name: "러시안 트위스트", Reps: "15회", Description: "바닥에 앉아 상체를 약간 뒤로 젖힌 후, 몸통을 좌우로 비틉니다.", Image: "https://images.unsplash.com/photo-1517836357463-d25dfeac3438?q=80&w=200"},
					{Name: "사이드 플랭크", Reps: "30초/방향", Description: "엉덩이를 들어 머리부터 발끝까지 일직선을 유지합니다.", Image: "https://images.unsplash.com/photo-1566241440091-ec10de8db2e1?q=80&w=200"},
					{Name: "바이시클 크런치", Reps: "20회", Description: "자전거를 타듯 다리를 움직이며 반대쪽 팔꿈치와 무릎을 닿게 합니다.", Image: "https://images.unsplash.com/photo-1571019614242-c5c5dee9f50b?q=80&w=200"},
				},
			},
			{
				ID:        "w2",
				Tags:      []string{"Legs", "Tired", "stretch"},
				Title:     "누워서 하는 하체 조각",
				Duration:  "15분",
				Intensity: recommend.IntensityLow,
				Exercises: []recommend.Exercise{
					{Name: "라잉 레그 레이즈", Reps: "12회", Description: "평평하게 누워 무릎을 굽히지 않고 다리를 들어 올립니다.", Image: "https://images.unsplash.com/photo-1599058945522-28d584b6f0ff?q=80&w=200"},
				},
			},
		},
	}
}

var _ recommend.CatalogRepository = (*MemoryRepository)(nil)
