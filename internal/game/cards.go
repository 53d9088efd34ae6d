package game

import "github.com/google/uuid"

// --- Card factories ---

// NewLifeCard creates a playable life/action card.
func NewLifeCard(name, description string, power, cost int) *Card {
	return &Card{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Kind:        KindLife,
		Power:       power,
		Cost:        cost,
	}
}

// NewChallengeCard creates a standard challenge card.
func NewChallengeCard(name, description string, power int) *Card {
	return &Card{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Kind:        KindChallenge,
		Power:       power,
		Challenge:   ChallengeStandard,
	}
}

// NewRiskRewardChallenge creates a risk/reward challenge: a larger success
// bonus, doubled damage on failure.
func NewRiskRewardChallenge(name, description string, power, bonus int) *Card {
	return &Card{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Kind:        KindChallenge,
		Power:       power,
		Challenge:   ChallengeRiskReward,
		BonusPower:  bonus,
	}
}

// NewInsuranceCard creates an insurance card. usage is ignored for
// whole-life policies.
func NewInsuranceCard(name, description string, kind InsuranceKind, cost, coverage, usage int) *Card {
	c := &Card{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Kind:        KindInsurance,
		Cost:        cost,
		Insurance:   kind,
		Coverage:    coverage,
	}
	if kind == InsuranceTerm {
		c.UsageCount = usage
		c.MaxUsage = usage
	}
	return c
}

// NewDreamCard creates a dream (goal) card. Power feeds the final score.
func NewDreamCard(name, description string, power int) *Card {
	return &Card{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Kind:        KindDream,
		Power:       power,
	}
}

// newCharacterCard creates a character choice card. Power is the
// starting vitality bonus the character grants.
func newCharacterCard(name, description string, bonus int) *Card {
	return &Card{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Kind:        KindLife,
		Power:       bonus,
	}
}

// --- Built-in catalog ---

type lifeSpec struct {
	name  string
	desc  string
	power int
	cost  int
	count int
}

type challengeSpec struct {
	name  string
	desc  string
	power int
	kind  ChallengeKind
	bonus int
}

var builtinLife = []lifeSpec{
	{"朝のランニング", "健やかな一日の始まり", 2, 0, 4},
	{"資格の勉強", "コツコツ積み上げる", 3, 0, 4},
	{"貯金", "将来への備え", 2, 0, 4},
	{"友人との飲み会", "人脈は財産", 3, 0, 3},
	{"副業", "収入の柱を増やす", 4, 0, 3},
	{"家族の支え", "何よりも心強い", 5, 0, 2},
	{"健康的な食事", "体は資本", 2, 0, 3},
	{"読書", "知識は裏切らない", 3, 0, 3},
	{"上司の引き立て", "チャンスをつかむ", 4, 0, 2},
	{"長年の経験", "若さには代えられない重み", 6, 0, 2},
}

var builtinChallenges = []challengeSpec{
	{"健康診断", "結果はいかに", 4, ChallengeStandard, 0},
	{"就職活動", "最初の関門", 6, ChallengeStandard, 0},
	{"引っ越し", "新生活の準備", 5, ChallengeStandard, 0},
	{"資格試験", "努力の見せどころ", 7, ChallengeStandard, 0},
	{"昇進試験", "責任の重み", 8, ChallengeStandard, 0},
	{"親の介護", "避けては通れない", 9, ChallengeStandard, 0},
	{"住宅購入", "人生最大の買い物", 10, ChallengeStandard, 0},
	{"大病", "体の警告", 11, ChallengeStandard, 0},
	{"リストラの危機", "会社は守ってくれない", 9, ChallengeStandard, 0},
	{"起業の誘い", "一攫千金か無一文か", 10, ChallengeRiskReward, 5},
	{"株式投資", "上がるも下がるも自己責任", 8, ChallengeRiskReward, 4},
	{"海外赴任", "大きな賭け、大きな経験", 9, ChallengeRiskReward, 4},
}

var builtinDreams = []struct {
	name  string
	desc  string
	power int
}{
	{"世界一周旅行", "いつか必ず", 5},
	{"マイホーム", "家族と暮らす庭付きの家", 4},
	{"起業", "自分の城を築く", 6},
	{"田舎暮らし", "静かな余生", 3},
}

var builtinCharacters = []struct {
	name  string
	desc  string
	bonus int
}{
	{"体育会系", "体力には自信あり", 10},
	{"堅実タイプ", "無理はしない", 5},
	{"夢追い人", "リスクを恐れない", 0},
}

// insurancePlan is a template the ledger stamps offers from.
type insurancePlan struct {
	name     string
	desc     string
	kind     InsuranceKind
	cost     int
	coverage int
}

var builtinPlans = []insurancePlan{
	{"終身保険", "一生涯の安心", InsuranceWholeLife, 3, 4},
	{"定期保険", "期間限定の手厚い補償", InsuranceTerm, 2, 6},
}
