package digest_usecase

import (
	"fmt"
	"strings"

	"github.com/Yaz-U/ai-news-daily/domain"
	"github.com/Yaz-U/ai-news-daily/utils/html_parser"
)

const (
	summaryExcerptChars    = 300
	commentaryExcerptChars = 400
)

func writeArticleBlock(sb *strings.Builder, articles []domain.Article, excerpt int) {
	for i, a := range articles {
		sb.WriteString(fmt.Sprintf("\n【記事%d】\n", i+1))
		sb.WriteString(fmt.Sprintf("タイトル: %s\n", a.Title))
		sb.WriteString(fmt.Sprintf("ソース: %s\n", a.Source))
		sb.WriteString(fmt.Sprintf("URL: %s\n", a.URL))
		sb.WriteString(fmt.Sprintf("概要: %s\n", html_parser.TruncateRunes(a.Summary, excerpt)))
		sb.WriteString("---\n")
	}
}

// BuildSummaryPrompt asks for the digest object over the given articles.
func BuildSummaryPrompt(articles []domain.Article) string {
	var sb strings.Builder

	sb.WriteString("あなたはAI分野の専門的なニュースキュレーターです。\n")
	sb.WriteString("以下はアメリカの主要テックメディアから収集した最新のAI関連ニュース記事です。\n")
	writeArticleBlock(&sb, articles, summaryExcerptChars)

	sb.WriteString("\n【タスク1: ニュース要約】\n")
	sb.WriteString("上記の記事の中から特に重要なニュースを選び、以下の形式で400字程度の日本語要約を作成してください。\n")
	sb.WriteString("- 各ニュースのポイントを簡潔に列挙\n")
	sb.WriteString("- 業界への影響・意義も含める\n")
	sb.WriteString("- 専門用語は適切に解説\n\n")

	sb.WriteString("【タスク2: メディア・専門家の意見分析】\n")
	sb.WriteString("上記の記事に含まれる記者・専門家の意見・見解を分析し、400字程度で以下を含む日本語要約を作成してください。\n")
	sb.WriteString("- ポジティブな意見（技術的進歩への期待、ビジネス機会など）\n")
	sb.WriteString("- ネガティブな意見（リスク、規制懸念、雇用問題など）\n")
	sb.WriteString("- 中立・バランスの取れた見解\n\n")

	sb.WriteString("必ずJSONのみで回答してください（説明文は不要）：\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"news_summary\": \"ニュース要約（400字程度）\",\n")
	sb.WriteString("  \"opinion_summary\": \"意見・見解の要約（400字程度）\",\n")
	sb.WriteString("  \"sentiment\": {\n")
	sb.WriteString("    \"positive\": \"ポジティブな意見の要点（100字程度）\",\n")
	sb.WriteString("    \"negative\": \"ネガティブな意見の要点（100字程度）\",\n")
	sb.WriteString("    \"neutral\": \"中立的な見解の要点（100字程度）\"\n")
	sb.WriteString("  },\n")
	sb.WriteString("  \"top_articles\": [\n")
	n := len(articles)
	if n == 0 {
		n = 1
	}
	for i := 1; i <= n; i++ {
		sep := ","
		if i == n {
			sep = ""
		}
		sb.WriteString(fmt.Sprintf("    {\"rank\": %d, \"title\": \"記事タイトル\", \"source\": \"ソース名\", \"url\": \"URL\", \"point\": \"重要ポイント（50字）\"}%s\n", i, sep))
	}
	sb.WriteString("  ]\n")
	sb.WriteString("}\n")

	return sb.String()
}

// BuildCommentaryPrompt asks for 3 to 4 commentary cards in the NY
// correspondent voice.
func BuildCommentaryPrompt(articles []domain.Article) string {
	var sb strings.Builder

	sb.WriteString("あなたはニューヨーク在住の日本人ジャーナリストです。\n")
	sb.WriteString("アメリカのAI業界を最前線で取材し、日本のビジネスパーソン向けに「本当に重要なこと」を伝えることを使命としています。\n\n")

	sb.WriteString("【あなたのスタンス・文体】\n")
	sb.WriteString("- NYからの俯瞰的・グローバル視点。日本のメディアが伝えない「現地の空気感」を大切にする\n")
	sb.WriteString("- 技術の表面的なスゴさではなく、ビジネス・経済・社会への実際のインパクトを問う\n")
	sb.WriteString("- AIブームに乗っかった楽観論には懐疑的。「本当にそうか？」と問い直す逆張り姿勢\n")
	sb.WriteString("- 大企業・スタートアップの「建前」と「本音」を見抜く\n")
	sb.WriteString("- 読者に「なぜこれが自分ごとなのか」を伝える\n")
	sb.WriteString("- 断言する。「〜かもしれません」より「〜です」「〜でした」\n\n")

	sb.WriteString("【記事の形式】\n")
	sb.WriteString("- 見出しは【】で囲む（例：【現実】【衝撃】【ミニ教養】【絶句】【完全解説】【NY発】【独自分析】）\n")
	sb.WriteString("- 見出しは15字以内で読者の興味を引くキャッチーなもの\n")
	sb.WriteString("- 本文は250〜350字の日本語\n")
	sb.WriteString("- 最後に「■ なぜ重要か」として1〜2文で核心をまとめる\n\n")

	sb.WriteString("以下のニュース記事の中から、あなたの目線で特に重要・興味深いと思う記事を3〜4本選び、\n")
	sb.WriteString("それぞれについて上記スタイルで解説記事を書いてください。\n")
	writeArticleBlock(&sb, articles, commentaryExcerptChars)

	sb.WriteString("\n必ずJSONのみで回答してください（説明文・マークダウン不要）：\n")
	sb.WriteString("[\n")
	sb.WriteString("  {\n")
	sb.WriteString("    \"headline\": \"【〇〇】見出しテキスト\",\n")
	sb.WriteString("    \"source_title\": \"参照した記事の元タイトル\",\n")
	sb.WriteString("    \"source_url\": \"参照した記事のURL\",\n")
	sb.WriteString("    \"source_name\": \"メディア名\",\n")
	sb.WriteString("    \"body\": \"本文（250〜350字）\",\n")
	sb.WriteString("    \"why_matters\": \"■ なぜ重要か：（1〜2文）\"\n")
	sb.WriteString("  }\n")
	sb.WriteString("]\n")

	return sb.String()
}
